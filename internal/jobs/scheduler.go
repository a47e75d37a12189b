package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// Reconciler is the periodic proficiency repair pass.
type Reconciler interface {
	ReconcileAll(ctx context.Context, concurrency int) (proficiency.ReconcileStats, error)
}

type SchedulerConfig struct {
	// Spec is a cron expression or descriptor such as "@every 1h". Empty disables the job.
	Spec        string
	Concurrency int
	Timeout     time.Duration
}

// Scheduler runs the proficiency reconciler on a cron schedule. Runs never overlap.
type Scheduler struct {
	log        *logger.Logger
	cron       *cron.Cron
	reconciler Reconciler
	cfg        SchedulerConfig
}

func NewScheduler(baseLog *logger.Logger, reconciler Reconciler, cfg SchedulerConfig) (*Scheduler, error) {
	s := &Scheduler{
		log:        baseLog.With("component", "ReconcileScheduler"),
		reconciler: reconciler,
		cfg:        cfg,
	}
	if s.cfg.Timeout <= 0 {
		s.cfg.Timeout = 30 * time.Minute
	}
	spec := strings.TrimSpace(cfg.Spec)
	if spec == "" {
		return s, nil
	}
	cl := cronLogger{log: s.log}
	s.cron = cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return s, nil
}

// Enabled reports whether a schedule was configured.
func (s *Scheduler) Enabled() bool { return s.cron != nil }

// Start runs the schedule until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	if s.cron == nil {
		s.log.Info("proficiency reconcile disabled")
		return
	}
	s.cron.Start()
	s.log.Info("proficiency reconcile scheduled", "spec", s.cfg.Spec)
	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
}

// RunOnce performs a single reconcile pass with the configured timeout.
func (s *Scheduler) RunOnce(ctx context.Context) (proficiency.ReconcileStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	start := time.Now()
	stats, err := s.reconciler.ReconcileAll(ctx, s.cfg.Concurrency)
	if err != nil {
		s.log.Error("proficiency reconcile failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return stats, err
	}
	s.log.Info("proficiency reconcile done", "users", stats.Users, "failed", stats.Failed, "duration_ms", time.Since(start).Milliseconds())
	return stats, nil
}

type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
