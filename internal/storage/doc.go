// Package storage persists dispatch history: one row per webhook dispatch
// batch and one per report file written to disk. The retained batch count
// is capped via Config.KeepBatches.
package storage
