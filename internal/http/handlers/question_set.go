package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/practice-backend/internal/data/repos"
	"github.com/yungbote/practice-backend/internal/http/response"
	quizmod "github.com/yungbote/practice-backend/internal/modules/quiz"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type QuestionSetHandler struct {
	log  *logger.Logger
	quiz quizmod.Usecases
}

func NewQuestionSetHandler(log *logger.Logger, quiz quizmod.Usecases) *QuestionSetHandler {
	return &QuestionSetHandler{log: log.With("handler", "QuestionSetHandler"), quiz: quiz}
}

// GET /api/courses/:course/learning-areas/:area/skills/:skill/difficulty-levels/:level/question-sets/:set
func (h *QuestionSetHandler) GetQuestionSet(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	view, err := h.quiz.ResolveQuestionSet(c.Request.Context(), repos.SlugPath{
		Course:       c.Param("course"),
		LearningArea: c.Param("area"),
		Skill:        c.Param("skill"),
		Level:        c.Param("level"),
		QuestionSet:  c.Param("set"),
	})
	if err != nil {
		response.RespondAPIError(c, err, "load_question_set_failed")
		return
	}
	response.RespondOK(c, view)
}
