// Package dispatch sequences webhook deliveries for one report run.
//
// A dispatch is strictly sequential: segments and messages go out one at a
// time, in order, with a configurable pacing interval between sends. Order
// is a correctness requirement at the receiving end: "(i/N)" pages and the
// summary-then-detail sequence only make sense in order, so deliveries are
// deliberately not parallelized.
//
// Delivery semantics
//
// Dispatch is best-effort, not atomic. A failed segment is recorded in the
// BatchResult and the remaining segments are still attempted. Exactly one
// attempt is made per segment; a retry loop around the sender is the
// natural extension point if one is ever wanted.
package dispatch
