package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/jobs"
	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	"github.com/yungbote/practice-backend/internal/modules/quiz"
	"github.com/yungbote/practice-backend/internal/platform/logger"
	"github.com/yungbote/practice-backend/internal/services"
)

type Services struct {
	Identity    services.IdentityService
	Proficiency *proficiency.Propagator
	Quiz        quiz.Usecases
	Scheduler   *jobs.Scheduler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	identity, err := services.NewIdentityService(log, cfg.JWTSecretKey)
	if err != nil {
		return Services{}, fmt.Errorf("init identity service: %w", err)
	}

	propagator, err := wirePropagator(db, log, cfg, repos)
	if err != nil {
		return Services{}, err
	}
	policy := propagator.Policy()

	quizUC := quiz.New(quiz.UsecasesDeps{
		DB:           db,
		Log:          log,
		QuestionSets: repos.QuestionSet,
		Questions:    repos.Question,
		Attempts:     repos.QuizAttempt,
		Answers:      repos.QuestionAnswer,
		Proficiency:  propagator,
		Policy:       policy,
		Bus:          clients.Bus,
		Cache:        clients.Cache,
		CacheTTL:     cfg.QuestionSetCacheTTL,
	})

	scheduler, err := wireScheduler(log, cfg, propagator, cfg.ReconcileCron)
	if err != nil {
		return Services{}, fmt.Errorf("init reconcile scheduler: %w", err)
	}

	return Services{
		Identity:    identity,
		Proficiency: propagator,
		Quiz:        quizUC,
		Scheduler:   scheduler,
	}, nil
}

func wirePropagator(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (*proficiency.Propagator, error) {
	policy, err := proficiency.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load proficiency policy: %w", err)
	}
	return proficiency.NewPropagator(proficiency.PropagatorDeps{
		DB:        db,
		Log:       log,
		Policy:    policy,
		Hierarchy: repos.Hierarchy,
		Skills:    repos.SkillProficiency,
		Areas:     repos.LearningAreaProficiency,
		Courses:   repos.CourseProficiency,
	}), nil
}

func wireScheduler(log *logger.Logger, cfg Config, rec jobs.Reconciler, spec string) (*jobs.Scheduler, error) {
	return jobs.NewScheduler(log, rec, jobs.SchedulerConfig{
		Spec:        spec,
		Concurrency: cfg.ReconcileConcurrency,
		Timeout:     cfg.ReconcileTimeout,
	})
}
