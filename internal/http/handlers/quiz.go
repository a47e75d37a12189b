package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/http/response"
	quizmod "github.com/yungbote/practice-backend/internal/modules/quiz"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type QuizHandler struct {
	log  *logger.Logger
	quiz quizmod.Usecases
}

func NewQuizHandler(log *logger.Logger, quiz quizmod.Usecases) *QuizHandler {
	return &QuizHandler{log: log.With("handler", "QuizHandler"), quiz: quiz}
}

type startAttemptResponse struct {
	AttemptID   uuid.UUID `json:"attemptId"`
	IsCompleted bool      `json:"isCompleted"`
	StartedAt   time.Time `json:"startedAt"`
}

// POST /api/question-sets/:id/attempts
func (h *QuizHandler) StartAttempt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	setID, ok := uuidParam(c, "id", "invalid_question_set_id")
	if !ok {
		return
	}
	attempt, err := h.quiz.GetOrCreateAttempt(c.Request.Context(), userID, setID)
	if err != nil {
		response.RespondAPIError(c, err, "start_attempt_failed")
		return
	}
	response.RespondOK(c, startAttemptResponse{
		AttemptID:   attempt.ID,
		IsCompleted: attempt.IsCompleted,
		StartedAt:   attempt.StartedAt,
	})
}

// GET /api/question-sets/:id/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	setID, ok := uuidParam(c, "id", "invalid_question_set_id")
	if !ok {
		return
	}
	items, err := h.quiz.ListCompletedAttempts(c.Request.Context(), userID, setID)
	if err != nil {
		response.RespondAPIError(c, err, "list_attempts_failed")
		return
	}
	response.RespondOK(c, gin.H{"attempts": items})
}

type recordAnswerRequest struct {
	QuestionID string `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
	TimeSpent  int    `json:"timeSpent"`
}

// POST /api/attempts/:id/answers
func (h *QuizHandler) RecordAnswer(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	attemptID, ok := uuidParam(c, "id", "invalid_attempt_id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1<<15)
	var req recordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	questionID := uuid.Nil
	if req.QuestionID != "" {
		parsed, err := uuid.Parse(req.QuestionID)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
			return
		}
		questionID = parsed
	}

	out, err := h.quiz.RecordAnswer(c.Request.Context(), quizmod.RecordAnswerInput{
		UserID:     userID,
		AttemptID:  attemptID,
		QuestionID: questionID,
		Answer:     req.UserAnswer,
		TimeSpent:  req.TimeSpent,
	})
	if err != nil {
		response.RespondAPIError(c, err, "record_answer_failed")
		return
	}
	response.RespondOK(c, out)
}

type finalizeResponse struct {
	quizmod.FinalizeResult
	AlreadyFinalized bool `json:"alreadyFinalized"`
}

// POST /api/attempts/:id/finalize
// A repeat call answers 200 with the stored result and alreadyFinalized set.
func (h *QuizHandler) Finalize(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	attemptID, ok := uuidParam(c, "id", "invalid_attempt_id")
	if !ok {
		return
	}
	res, err := h.quiz.Finalize(c.Request.Context(), userID, attemptID)
	if err != nil {
		if quizmod.IsAlreadyFinalized(err) {
			response.RespondOK(c, finalizeResponse{FinalizeResult: res, AlreadyFinalized: true})
			return
		}
		response.RespondAPIError(c, err, "finalize_failed")
		return
	}
	response.RespondOK(c, finalizeResponse{FinalizeResult: res})
}

// GET /api/attempts/:id
func (h *QuizHandler) GetAttempt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	attemptID, ok := uuidParam(c, "id", "invalid_attempt_id")
	if !ok {
		return
	}
	detail, err := h.quiz.GetAttemptDetail(c.Request.Context(), userID, attemptID)
	if err != nil {
		response.RespondAPIError(c, err, "load_attempt_failed")
		return
	}
	response.RespondOK(c, detail)
}
