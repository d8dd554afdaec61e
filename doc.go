// Package nebulaframe is an in-memory columnar dataframe engine.
//
// A table holds one typed index and any number of named, typed columns of
// possibly different lengths. Rows are addressed by position or by index
// value, selected with predicates, sampled, deduplicated and exposed through
// views that read and write the parent's storage without copying it.
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/nebulaframe/pkg/frame"
//	    "github.com/ajitpratap0/nebulaframe/pkg/frameio"
//	)
//
//	tbl := frame.New[int](frame.WithName("quotes"))
//	tbl.LoadIndex([]int{1, 2, 3})
//	frame.LoadColumn(tbl, "price", []float64{10.5, 11, 9.75}, frame.PadWithNaNs)
//
//	cheap, err := frame.SelectBy1(tbl, "price", func(_ int, p float64) bool { return p < 11 })
//	if err != nil {
//	    return err
//	}
//	err = frameio.WriteCSV(os.Stdout, cheap, frameio.CSVOptions{})
//
// # Key Packages
//
//	pkg/frame          - Tables, columns, selection, views, dedup, alignment
//	pkg/frameio        - CSV, JSON and Arrow interchange plus stream compression
//	pkg/frameerrors    - Typed dataframe errors
//	pkg/config         - Table defaults loaded from YAML
//	pkg/logger         - Structured logging
//	pkg/metrics        - Prometheus operation metrics
//	pkg/observability  - Trace spans and process resource sampling
//	pkg/pool           - Pooled scratch buffers for selections
//	pkg/testutil       - Test helpers and fixtures
//
// # Missing Values
//
// Each element type has a missing value (NaN): IEEE NaN for floats, the empty
// string, the zero time. Integers and booleans have no missing value and pad
// with zero. Types implementing frame.NaNer supply their own.
//
// # Command Line
//
// cmd/framectl builds a synthetic price table and runs selections over it:
//
//	framectl demo --rows 30 --above 100 --format json
//	framectl bench --rows 100000 --iterations 5 --trace
package nebulaframe
