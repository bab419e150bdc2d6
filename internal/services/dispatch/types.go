package dispatch

import (
	"context"
	"time"

	"stockpulse/internal/wecom"
)

// Config carries the dispatcher's explicit knobs. Defaults match the
// WeCom platform: 4096-byte hard limit, a 2000-byte chunking target that
// leaves headroom for pagination markers, and ~1s between sends to stay
// under the robot's rate limit.
type Config struct {
	// ChunkBudget is the target byte size per segment before markers.
	ChunkBudget int
	// HardLimit is the transport's absolute byte ceiling per message.
	HardLimit int
	// PaceInterval is the delay between consecutive sends.
	// Zero disables pacing (tests run unpaced).
	PaceInterval time.Duration
}

const (
	defaultChunkBudget = 2000
	defaultHardLimit   = 4096
)

// Sender delivers a single message. *wecom.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, text string) wecom.Outcome
}

// Failure records one failed delivery within a batch.
type Failure struct {
	// Index is the zero-based position of the segment or message within
	// the batch, in send order.
	Index   int
	Outcome wecom.Outcome
}

// BatchResult aggregates the outcomes of one dispatch call.
type BatchResult struct {
	Total     int
	Delivered int
	Failures  []Failure
}

func (r BatchResult) Failed() int { return len(r.Failures) }

// OverallSuccess reports whether every tracked delivery succeeded.
func (r BatchResult) OverallSuccess() bool { return r.Delivered == r.Total }
