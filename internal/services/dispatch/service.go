package dispatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"stockpulse/internal/wecom"
	"stockpulse/pkg/chunk"
	"stockpulse/pkg/logx"
)

type Service struct {
	cfg    Config
	sender Sender
	log    logx.Logger

	// limiter spaces sends PaceInterval apart; burst 1 lets the first
	// send go out immediately. Nil when pacing is disabled.
	limiter *rate.Limiter
}

func New(cfg Config, sender Sender, log logx.Logger) *Service {
	if cfg.ChunkBudget <= 0 {
		cfg.ChunkBudget = defaultChunkBudget
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = defaultHardLimit
	}
	s := &Service{cfg: cfg, sender: sender, log: log}
	if cfg.PaceInterval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(cfg.PaceInterval), 1)
	}
	return s
}

// DispatchLong delivers one long text, chunking and paginating it as
// needed. Content that already fits the chunk budget goes out as a single
// unpaginated message. Empty content is a no-op, not an error.
func (s *Service) DispatchLong(ctx context.Context, content string) BatchResult {
	if content == "" {
		return BatchResult{}
	}
	if len(content) <= s.cfg.ChunkBudget {
		return s.sendAll(ctx, []string{content})
	}

	segments := chunk.Split(content, s.cfg.ChunkBudget)
	pages := chunk.Paginate(segments, s.cfg.HardLimit)
	s.log.Info("report exceeds single-message budget; paginating",
		logx.Int("bytes", len(content)),
		logx.Int("pages", len(pages)))
	return s.sendAll(ctx, pages)
}

// DispatchMany delivers a set of independent messages in order, pacing
// between messages: e.g. one summary followed by one message per stock.
// Each message is expected to fit the hard limit on its own.
func (s *Service) DispatchMany(ctx context.Context, msgs []string) BatchResult {
	return s.sendAll(ctx, msgs)
}

func (s *Service) sendAll(ctx context.Context, msgs []string) BatchResult {
	res := BatchResult{Total: len(msgs)}
	start := time.Now()

	for i, m := range msgs {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				res.Failures = append(res.Failures, Failure{
					Index:   i,
					Outcome: wecom.Outcome{Status: wecom.StatusTransportFailed, Detail: err.Error()},
				})
				continue
			}
		}
		out := s.sender.Send(ctx, m)
		if out.Delivered() {
			res.Delivered++
			continue
		}
		// Record and keep going: one failed segment must not block the rest.
		res.Failures = append(res.Failures, Failure{Index: i, Outcome: out})
		s.log.Warn("segment delivery failed",
			logx.Int("index", i+1),
			logx.Int("total", res.Total),
			logx.String("outcome", out.String()))
	}

	fields := []logx.Field{
		logx.Int("total", res.Total),
		logx.Int("delivered", res.Delivered),
		logx.Int("failed", res.Failed()),
		logx.Duration("dur", time.Since(start)),
	}
	if res.OverallSuccess() {
		s.log.Info("dispatch finished", fields...)
	} else {
		s.log.Warn("dispatch finished with failures", fields...)
	}
	return res
}
