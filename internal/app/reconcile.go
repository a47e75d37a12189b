package app

import (
	"context"

	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// Reconcile runs one proficiency repair pass without starting the HTTP stack.
func Reconcile(ctx context.Context, log *logger.Logger, cfg Config) (proficiency.ReconcileStats, error) {
	store, err := OpenStore(log, cfg)
	if err != nil {
		return proficiency.ReconcileStats{}, err
	}
	defer func() { _ = store.Close() }()

	reposet := wireRepos(store.DB(), log)
	propagator, err := wirePropagator(store.DB(), log, cfg, reposet)
	if err != nil {
		return proficiency.ReconcileStats{}, err
	}
	scheduler, err := wireScheduler(log, cfg, propagator, "")
	if err != nil {
		return proficiency.ReconcileStats{}, err
	}
	return scheduler.RunOnce(ctx)
}
