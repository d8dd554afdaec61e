package frameio_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/frameio"
	"github.com/ajitpratap0/nebulaframe/pkg/testutil"
)

type point struct{ X, Y int }

func csvLines(t *testing.T, tbl *frame.Table[int], opts frameio.CSVOptions) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, frameio.WriteCSV(&buf, tbl, opts))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestWriteCSV(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	_, err := frame.LoadColumn(tbl, "s", []float64{1.5}, frame.DontPadWithNaNs)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"INDEX:5:<int>,v:5:<int>,s:1:<float64>",
		"1,10,1.5",
		"2,20,",
		"3,30,",
		"4,40,",
		"5,50,",
	}, csvLines(t, tbl, frameio.CSVOptions{}))
}

func TestWriteCSVRowSelection(t *testing.T) {
	tests := []struct {
		name string
		opts frameio.CSVOptions
		want []string
	}{
		{"window", frameio.CSVOptions{Window: &frameio.Window{Start: 1, End: 4}}, []string{"2,20", "3,30", "4,40"}},
		{"open window", frameio.CSVOptions{Window: &frameio.Window{Start: 3}}, []string{"4,40", "5,50"}},
		{"first two", frameio.CSVOptions{MaxRecords: 2}, []string{"1,10", "2,20"}},
		{"last two", frameio.CSVOptions{MaxRecords: -2}, []string{"4,40", "5,50"}},
		{"last of window", frameio.CSVOptions{Window: &frameio.Window{Start: 1, End: 4}, MaxRecords: -1}, []string{"4,40"}},
		{"more than available", frameio.CSVOptions{MaxRecords: -10}, []string{"1,10", "2,20", "3,30", "4,40", "5,50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := csvLines(t, testutil.FiveRowTable(t), tt.opts)
			assert.Equal(t, "INDEX:5:<int>,v:5:<int>", lines[0])
			assert.Equal(t, tt.want, lines[1:])
		})
	}
}

func TestWriteCSVErrors(t *testing.T) {
	tbl := testutil.FiveRowTable(t)
	var buf bytes.Buffer

	err := frameio.WriteCSV(&buf, tbl, frameio.CSVOptions{Window: &frameio.Window{Start: 6}})
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeBadRange)
	err = frameio.WriteCSV(&buf, tbl, frameio.CSVOptions{Window: &frameio.Window{Start: -1}})
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeBadRange)

	_, err = frame.CreateColumn[point](tbl, "p")
	require.NoError(t, err)
	err = frameio.WriteCSV(&buf, tbl, frameio.CSVOptions{})
	testutil.RequireErrorType(t, err, frameerrors.ErrorTypeNotImplemented)
	assert.Zero(t, buf.Len(), "nothing is written on failure")
}

type CSVFileSuite struct {
	testutil.FileSuite
}

func (s *CSVFileSuite) TestWriteIBMFile() {
	tbl := testutil.IBMTable(s.T())

	f, err := os.Create(s.Path("ibm.csv"))
	s.Require().NoError(err)
	s.Require().NoError(frameio.WriteCSV(f, tbl, frameio.CSVOptions{}))
	s.Require().NoError(f.Close())

	lines := strings.Split(strings.TrimSpace(s.ReadFile("ibm.csv")), "\n")
	s.Len(lines, 7)
	s.Equal("INDEX:6:<string>,IBM_Open:6:<float64>,IBM_High:6:<float64>,IBM_Low:6:<float64>,"+
		"IBM_Close:6:<float64>,IBM_Adj_Close:6:<float64>,IBM_Volume:6:<int64>", lines[0])
	s.Equal("2024-02-12,149.5,151,148.9,150.6,148.1,4210300", lines[1])
}

func (s *CSVFileSuite) TestWriteLastRowsFile() {
	tbl := testutil.IBMTable(s.T())

	f, err := os.Create(s.Path("tail.csv"))
	s.Require().NoError(err)
	s.Require().NoError(frameio.WriteCSV(f, tbl, frameio.CSVOptions{MaxRecords: -1}))
	s.Require().NoError(f.Close())

	lines := strings.Split(strings.TrimSpace(s.ReadFile("tail.csv")), "\n")
	s.Require().Len(lines, 2)
	s.True(strings.HasPrefix(lines[1], "2024-02-20,147.3,"))
}

func TestCSVFileSuite(t *testing.T) {
	suite.Run(t, new(CSVFileSuite))
}
