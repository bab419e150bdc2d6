// Package report renders stock analysis results into markdown reports and
// compact per-stock webhook messages.
//
// Records are strongly typed: every optional field the analyzer may or may
// not produce is an explicit field (empty string / nil section) rather than
// a dynamically probed bag, and rendering simply skips what is absent.
package report
