package scheduler

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	logx "stockpulse/pkg/logx"
)

type Config struct {
	Enabled  bool
	Spec     string // cron spec or descriptor like "@daily"
	Timezone string // IANA TZ, e.g. "Asia/Shanghai"
}

// Job is one named scheduled function.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

type entry struct {
	job  Job
	spec string
}

// Service triggers registered jobs on a cron schedule in the configured
// timezone. Jobs run in their own goroutine; a failing or panicking job
// never takes down the cron loop.
type Service struct {
	mu sync.Mutex

	log logx.Logger
	cfg Config
	loc *time.Location

	parser  cron.Parser
	c       *cron.Cron
	entries []entry

	runCtx    context.Context
	runCancel context.CancelFunc
}

func New(cfg Config, log logx.Logger) *Service {
	return &Service{
		cfg: cfg,
		log: log,
		// SecondOptional allows both 5-field and 6-field (with seconds) cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (s *Service) Enabled() bool {
	s.mu.Lock()
	en := s.cfg.Enabled
	s.mu.Unlock()
	return en
}

// Add registers a job under the service's configured spec. It may be called
// before or after Start; registration survives restarts.
func (s *Service) Add(job Job) error {
	return s.AddWithSpec(job, "")
}

// AddWithSpec registers a job under its own cron spec; an empty spec falls
// back to the config spec.
func (s *Service) AddWithSpec(job Job, spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resolved := spec
	if resolved == "" {
		resolved = strings.TrimSpace(s.cfg.Spec)
	}
	if resolved == "" {
		return errors.New("scheduler: empty cron spec")
	}
	if _, err := s.parser.Parse(resolved); err != nil {
		return err
	}
	// Store the spec as given: jobs without their own spec re-resolve
	// against the current config on every (re)start.
	e := entry{job: job, spec: spec}
	s.entries = append(s.entries, e)
	if s.c != nil {
		return s.registerLocked(e)
	}
	return nil
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}
	s.runCtx, s.runCancel = context.WithCancel(ctx)

	loc := s.loadLocationLocked()
	s.loc = loc
	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))

	for _, e := range s.entries {
		if err := s.registerLocked(e); err != nil {
			s.c = nil
			s.runCancel()
			return err
		}
	}
	s.c.Start()
	s.log.Info("scheduler started",
		logx.String("tz", loc.String()),
		logx.Int("jobs", len(s.entries)))
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return
	}
	if s.runCancel != nil {
		s.runCancel()
		s.runCancel = nil
	}
	<-s.c.Stop().Done()
	s.c = nil
	s.log.Info("scheduler stopped")
}

// Apply swaps the config; a spec or timezone change restarts the cron loop
// so registered jobs pick up the new schedule.
func (s *Service) Apply(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldSpec := strings.TrimSpace(s.cfg.Spec)
	oldTZ := strings.TrimSpace(s.cfg.Timezone)
	s.cfg = cfg

	if s.c == nil {
		return
	}
	if oldSpec != strings.TrimSpace(cfg.Spec) || oldTZ != strings.TrimSpace(cfg.Timezone) {
		s.restartLocked()
	}
}

func (s *Service) registerLocked(e entry) error {
	spec := e.spec
	if spec == "" {
		spec = strings.TrimSpace(s.cfg.Spec)
	}
	job := e.job
	// Capture the run context here rather than reading it in the cron
	// callback: Stop holds s.mu while draining running jobs, so the
	// callback must not need the lock.
	ctx := s.runCtx
	_, err := s.c.AddFunc(spec, func() { s.fire(ctx, job) })
	return err
}

func (s *Service) fire(ctx context.Context, job Job) {
	if ctx == nil || ctx.Err() != nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("panic in scheduled job",
					logx.String("job", job.Name),
					logx.Any("panic", r),
					logx.String("stack", string(debug.Stack())))
			}
		}()
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.log.Warn("job failed",
				logx.String("job", job.Name),
				logx.Duration("dur", time.Since(start)),
				logx.Err(err))
			return
		}
		s.log.Info("job ok",
			logx.String("job", job.Name),
			logx.Duration("dur", time.Since(start)))
	}()
}

func (s *Service) restartLocked() {
	<-s.c.Stop().Done()
	loc := s.loadLocationLocked()
	s.loc = loc
	s.c = cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))
	for _, e := range s.entries {
		if err := s.registerLocked(e); err != nil {
			s.log.Warn("job re-registration failed", logx.String("job", e.job.Name), logx.Err(err))
		}
	}
	s.c.Start()
	s.log.Info("scheduler restarted", logx.String("tz", loc.String()))
}

func (s *Service) loadLocationLocked() *time.Location {
	tz := strings.TrimSpace(s.cfg.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.log.Warn("invalid timezone, falling back to Local", logx.String("tz", tz), logx.Err(err))
		return time.Local
	}
	return loc
}
