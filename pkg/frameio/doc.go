// Package frameio moves tables across process boundaries.
//
// The engine itself has no file format. This package provides the
// emitters and importers applications use at the edges:
//
//   - WriteCSV: one header line of name:length:<type> fields followed by
//     one line per row, with an optional row window or last-N limit
//   - WriteJSON: a column-oriented object keyed by column name
//   - ToArrow and FromArrow: Apache Arrow record interchange
//
// Every emitter works on a private snapshot taken under the table lock, so
// concurrent mutation never tears a write. Missing cells (NaN sentinels and
// the tail of a short column) are written empty in CSV, null in JSON and
// null in Arrow. Element types outside the built-in families fail with a
// not_implemented error before anything is written.
package frameio
