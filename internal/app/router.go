package app

import (
	"github.com/yungbote/practice-backend/internal/http"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:                log,
		ServiceName:        cfg.ServiceName,
		AllowOrigins:       cfg.AllowOrigins,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		QuestionSetHandler: handlers.QuestionSet,
		QuizHandler:        handlers.Quiz,
		ProficiencyHandler: handlers.Proficiency,
	})
}
