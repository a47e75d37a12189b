package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/practice-backend/internal/http/handlers"
	httpMW "github.com/yungbote/practice-backend/internal/http/middleware"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowOrigins   []string
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	QuestionSetHandler *httpH.QuestionSetHandler
	QuizHandler        *httpH.QuizHandler
	ProficiencyHandler *httpH.ProficiencyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Content
		if cfg.QuestionSetHandler != nil {
			protected.GET("/courses/:course/learning-areas/:area/skills/:skill/difficulty-levels/:level/question-sets/:set",
				cfg.QuestionSetHandler.GetQuestionSet)
		}

		// Attempts
		if cfg.QuizHandler != nil {
			protected.POST("/question-sets/:id/attempts", cfg.QuizHandler.StartAttempt)
			protected.GET("/question-sets/:id/attempts", cfg.QuizHandler.ListAttempts)
			protected.POST("/attempts/:id/answers", cfg.QuizHandler.RecordAnswer)
			protected.POST("/attempts/:id/finalize", cfg.QuizHandler.Finalize)
			protected.GET("/attempts/:id", cfg.QuizHandler.GetAttempt)
		}

		// Proficiency
		if cfg.ProficiencyHandler != nil {
			protected.GET("/proficiency", cfg.ProficiencyHandler.ListMine)
		}
	}

	return r
}
