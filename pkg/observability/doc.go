// Package observability provides OpenTelemetry tracing and process resource
// sampling for code that drives nebulaframe tables.
//
// Operation metrics live in pkg/metrics; this package covers spans around
// caller-level work (a benchmark step, an export) and the resident memory
// those steps leave behind.
//
//	tr, err := observability.NewTracing(observability.TracingConfig{
//		ServiceName:  "framectl",
//		SamplingRate: 1,
//		Writer:       os.Stderr,
//	})
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(ctx)
//
//	ctx, span := tr.Start(ctx, "export", attribute.Int("rows", tbl.Len()))
//	err = frameio.WriteCSV(w, tbl, frameio.CSVOptions{})
//	span.End(err)
package observability
