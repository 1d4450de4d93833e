// Package catalog provides keyed lookup over the platform's stored
// procedure signature export.
//
// The export is a flat CSV with one row per (procedure, parameter). Rows
// are validated and normalized at the load boundary - the export's
// "Yes"/"No" flags become booleans, "None" markers become absent values -
// then indexed in an in-memory SQLite database so lookups stay
// parameterized queries rather than ad hoc string scans.
//
// A lookup that matches nothing returns an empty slice, never an error:
// "not found" is a result, and the caller decides how to present it.
package catalog
