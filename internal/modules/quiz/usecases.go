package quiz

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos"
	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	"github.com/yungbote/practice-backend/internal/platform/cache"
	"github.com/yungbote/practice-backend/internal/platform/logger"
	"github.com/yungbote/practice-backend/internal/realtime/bus"
)

const defaultQuestionSetCacheTTL = 5 * time.Minute

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	QuestionSets repos.QuestionSetRepo
	Questions    repos.QuestionRepo
	Attempts     repos.QuizAttemptRepo
	Answers      repos.QuestionAnswerRepo

	// Proficiency is optional; without it finalize only scores the attempt.
	Proficiency *proficiency.Propagator
	Policy      proficiency.Policy

	Bus      bus.Bus
	Cache    cache.Cache
	CacheTTL time.Duration
}

type Usecases struct {
	deps UsecasesDeps
	log  *logger.Logger
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if len(deps.Policy.Levels) == 0 {
		if deps.Proficiency != nil {
			deps.Policy = deps.Proficiency.Policy()
		} else {
			deps.Policy = proficiency.DefaultPolicy()
		}
	}
	if deps.Bus == nil {
		deps.Bus = bus.Noop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.Noop()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = defaultQuestionSetCacheTTL
	}
	return Usecases{deps: deps, log: deps.Log.With("service", "QuizUsecases")}
}
