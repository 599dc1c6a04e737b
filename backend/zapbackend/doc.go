// Package zapbackend implements the facade backend on top of zap.
//
// It provides:
//   - a console encoder with capital colored levels and short callers,
//     or a JSON encoder for machine consumption,
//   - a TRACE level below zap's debug level,
//   - per-name level overrides matched by dotted name prefix,
//   - explicit caller injection so facade attribution is preserved.
package zapbackend
