package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/practice-backend/internal/http/handlers"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	QuestionSet *httpH.QuestionSetHandler
	Quiz        *httpH.QuizHandler
	Proficiency *httpH.ProficiencyHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		QuestionSet: httpH.NewQuestionSetHandler(log, services.Quiz),
		Quiz:        httpH.NewQuizHandler(log, services.Quiz),
		Proficiency: httpH.NewProficiencyHandler(log, services.Proficiency),
	}
}
