// Package testutil provides testing utilities for nebulaframe
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// RequireErrorType fails the test immediately unless err is a frame error of
// the given type.
func RequireErrorType(t *testing.T, err error, errType frameerrors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, errType, frameerrors.TypeOf(err), "unexpected error: %v", err)
}

// FiveRowTable builds the small integer-indexed table used across tests:
// index 1..5 and column "v" holding 10..50.
func FiveRowTable(t *testing.T) *frame.Table[int] {
	t.Helper()

	tbl := frame.New[int](frame.WithName("five"), frame.WithLogger(TestLogger(t)))
	_, err := tbl.LoadIndex([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = frame.LoadColumn(tbl, "v", []int{10, 20, 30, 40, 50}, frame.PadWithNaNs)
	require.NoError(t, err)
	return tbl
}

// IBMColumns lists the price columns of IBMTable in creation order.
var IBMColumns = []string{"IBM_Open", "IBM_High", "IBM_Low", "IBM_Close", "IBM_Adj_Close"}

// IBMTable builds a string-indexed daily price table with five float64
// price columns and an int64 volume column.
func IBMTable(t *testing.T) *frame.Table[string] {
	t.Helper()

	tbl := frame.New[string](frame.WithName("ibm"), frame.WithLogger(TestLogger(t)))
	_, err := tbl.LoadIndex([]string{
		"2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15",
		"2024-02-16", "2024-02-20",
	})
	require.NoError(t, err)

	prices := map[string][]float64{
		"IBM_Open":      {149.5, 152.1, 148.0, 151.2, 154.8, 147.3},
		"IBM_High":      {151.0, 153.7, 150.2, 152.9, 156.0, 149.1},
		"IBM_Low":       {148.9, 150.3, 146.5, 149.8, 153.0, 145.2},
		"IBM_Close":     {150.6, 149.7, 149.9, 152.4, 155.1, 146.0},
		"IBM_Adj_Close": {148.1, 147.2, 147.4, 149.9, 152.5, 143.6},
	}
	for _, name := range IBMColumns {
		_, err = frame.LoadColumn(tbl, name, prices[name], frame.PadWithNaNs)
		require.NoError(t, err)
	}
	_, err = frame.LoadColumn(tbl, "IBM_Volume",
		[]int64{4210300, 5120900, 3980200, 4400100, 6100700, 5530000}, frame.PadWithNaNs)
	require.NoError(t, err)
	return tbl
}

// MinuteTable builds a time-indexed table with one sample per minute.
func MinuteTable(t *testing.T, rows int) *frame.Table[time.Time] {
	t.Helper()

	start := time.Date(2024, 2, 12, 9, 30, 0, 0, time.UTC)
	index, err := frame.GenerateTimeIndex(start, start.Add(time.Duration(rows-1)*time.Minute), time.Minute)
	require.NoError(t, err)

	tbl := frame.NewWithCompare(frame.CompareTime, frame.WithName("minutes"), frame.WithLogger(TestLogger(t)))
	_, err = tbl.LoadIndex(index)
	require.NoError(t, err)
	return tbl
}
