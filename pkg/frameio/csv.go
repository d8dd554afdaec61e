package frameio

import (
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameerrors"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
)

// Window selects the rows [Start, End). End <= 0 means through the last row.
type Window struct {
	Start int
	End   int
}

// CSVOptions controls WriteCSV.
type CSVOptions struct {
	// Window restricts output to a row range. Nil writes every row.
	Window     *Window
	// MaxRecords caps the rows written after windowing. Positive keeps the
	// first N rows, negative keeps the last N, zero keeps all.
	MaxRecords int
}

// rows resolves the options against a table of n rows.
func (o CSVOptions) rows(n int) (lo, hi int, err error) {
	lo, hi = 0, n
	if o.Window != nil {
		lo = o.Window.Start
		if o.Window.End > 0 {
			hi = min(o.Window.End, n)
		}
		if lo < 0 || lo > hi {
			return 0, 0, frameerrors.BadRange("WriteCSV", o.Window.Start, o.Window.End, n)
		}
	}
	switch {
	case o.MaxRecords > 0:
		hi = min(hi, lo+o.MaxRecords)
	case o.MaxRecords < 0:
		lo = max(lo, hi+o.MaxRecords)
	}
	return lo, hi, nil
}

// WriteCSV writes t as CSV. The header line names every series as
// name:length:<type>, index first. Cells past the end of a short column and
// NaN cells are written empty.
func WriteCSV[I comparable](w io.Writer, t *frame.Table[I], opts CSVOptions) error {
	indexInfo, index, cols, err := snapshot(t)
	if err != nil {
		return err
	}
	if err := checkEmittable("csv", indexInfo, cols); err != nil {
		return err
	}
	lo, hi, err := opts.rows(len(index))
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	record := make([]string, len(cols)+1)

	record[0] = indexInfo.String()
	for k, c := range cols {
		record[k+1] = c.info.String()
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := lo; i < hi; i++ {
		record[0] = formatCell(any(index[i]))
		for k, c := range cols {
			record[k+1] = ""
			if c.present(i) {
				record[k+1] = formatCell(c.col.Value(i))
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	logger.Debug("csv written",
		zap.String("table", t.Name()), zap.Int("rows", hi-lo), zap.Int("columns", len(cols)))
	return nil
}
