package testutil

import (
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// FileSuite provides a scratch directory for tests that write frames to disk
type FileSuite struct {
	suite.Suite
	tempDir   string
	startTime time.Time
}

// SetupSuite runs before all tests in the suite
func (s *FileSuite) SetupSuite() {
	s.startTime = time.Now()

	tempDir, err := os.MkdirTemp("", "nebulaframe-test-*")
	require.NoError(s.T(), err)
	s.tempDir = tempDir
}

// TearDownSuite runs after all tests in the suite
func (s *FileSuite) TearDownSuite() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
	s.T().Logf("suite completed in %v", time.Since(s.startTime))
}

// TempDir returns the temporary directory path
func (s *FileSuite) TempDir() string {
	return s.tempDir
}

// Path returns the path of name inside the temporary directory
func (s *FileSuite) Path(name string) string {
	return filepath.Join(s.tempDir, name)
}

// ReadFile returns the content of name inside the temporary directory
func (s *FileSuite) ReadFile(name string) string {
	data, err := os.ReadFile(s.Path(name))
	require.NoError(s.T(), err)
	return string(data)
}
