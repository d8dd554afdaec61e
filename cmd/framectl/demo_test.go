package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/frameio"
)

func TestBuildPricesIsReproducible(t *testing.T) {
	cfg := config.NewFrameConfig("demo")

	a, err := buildPrices(cfg, 15, 7)
	require.NoError(t, err)
	b, err := buildPrices(cfg, 15, 7)
	require.NoError(t, err)

	assert.Equal(t, 15, a.Len())
	assert.Equal(t, []string{"close", "volume"}, a.ColumnNames())
	assert.Equal(t, a.Index(), b.Index())
}

func TestRunDemo(t *testing.T) {
	cfg := config.NewFrameConfig("demo")

	tests := []struct {
		name  string
		opts  demoOptions
		lines int
	}{
		{"keep all", demoOptions{format: "csv", rows: 10, above: 0, seed: 1}, 12},
		{"keep none", demoOptions{format: "csv", rows: 10, above: 1e9, seed: 1}, 2},
		{"last rows", demoOptions{format: "csv", rows: 10, above: 0, last: 3, seed: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runDemo(&buf, cfg, tt.opts))
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Len(t, lines, tt.lines)
			assert.True(t, strings.HasPrefix(lines[0], "INDEX:"))
		})
	}
}

func TestRunDemoJSONAndErrors(t *testing.T) {
	cfg := config.NewFrameConfig("demo")

	var buf bytes.Buffer
	require.NoError(t, runDemo(&buf, cfg, demoOptions{format: "json", rows: 5, above: 0, seed: 3}))
	assert.True(t, strings.HasPrefix(buf.String(), `{"INDEX":{"N":6,"T":"time.Time"`))

	assert.Error(t, runDemo(&buf, cfg, demoOptions{format: "xml", rows: 5}))
	assert.Error(t, runDemo(&buf, cfg, demoOptions{format: "csv", rows: 0}))
}

func TestRunDemoCompressed(t *testing.T) {
	cfg := config.NewFrameConfig("demo")

	var plain, packed bytes.Buffer
	require.NoError(t, runDemo(&plain, cfg, demoOptions{format: "csv", rows: 8, above: 0, seed: 2}))
	require.NoError(t, runDemo(&packed, cfg, demoOptions{format: "csv", rows: 8, above: 0, seed: 2, compress: "gzip"}))

	r, err := frameio.NewDecompressReader(&packed, frameio.CodecGzip)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, plain.String(), string(got))

	assert.Error(t, runDemo(&packed, cfg, demoOptions{format: "csv", rows: 8, compress: "rar"}))
}
