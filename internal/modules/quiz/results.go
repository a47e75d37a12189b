package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/apierr"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

type AttemptSummary struct {
	ID             uuid.UUID  `json:"id"`
	QuestionSetID  uuid.UUID  `json:"questionSetId"`
	Title          string     `json:"title"`
	Difficulty     string     `json:"difficulty"`
	EarnedPoints   int        `json:"earnedPoints"`
	TotalPoints    int        `json:"totalPoints"`
	Percentage     float64    `json:"percentage"`
	Passed         bool       `json:"passed"`
	TotalTime      int        `json:"totalTime"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CorrectCount   int        `json:"correctCount"`
	TotalQuestions int        `json:"totalQuestions"`
}

type OptionDetail struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"isCorrect"`
}

type AnswerDetail struct {
	ID            uuid.UUID          `json:"id"`
	QuestionID    uuid.UUID          `json:"questionId"`
	QuestionText  string             `json:"questionText"`
	QuestionType  types.QuestionType `json:"questionType"`
	UserAnswer    string             `json:"userAnswer"`
	IsCorrect     bool               `json:"isCorrect"`
	PointsEarned  int                `json:"pointsEarned"`
	TimeSpent     int                `json:"timeSpent"`
	CorrectOption string             `json:"correctOption,omitempty"`
	AllOptions    []OptionDetail     `json:"allOptions"`
	Explanation   string             `json:"explanation,omitempty"`
}

// AttemptDetail is the full review of a completed attempt, answers included.
type AttemptDetail struct {
	Quiz      AttemptSummary `json:"quiz"`
	Answers   []AnswerDetail `json:"answers"`
	TimeStats TimeStats      `json:"timeStats"`
}

// GetAttemptDetail returns the review of a completed attempt owned by userID.
// In-progress attempts are refused so correct answers never leak mid-quiz.
func (u Usecases) GetAttemptDetail(ctx context.Context, userID, attemptID uuid.UUID) (*AttemptDetail, error) {
	if userID == uuid.Nil {
		return nil, unauthorized()
	}
	if attemptID == uuid.Nil {
		return nil, invalid("invalid_attempt_id")
	}
	dbc := dbctx.Context{Ctx: ctx}

	attempt, err := u.loadOwnedAttempt(dbc, userID, attemptID, false)
	if err != nil {
		return nil, err
	}
	if !attempt.IsCompleted {
		return nil, apierr.New(http.StatusConflict, "attempt_not_completed", ErrAttemptNotCompleted)
	}

	answers, err := u.deps.Answers.ListByAttempt(dbc, attempt.ID)
	if err != nil {
		return nil, internal("load_answers_failed", err)
	}
	questionIDs := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := u.deps.Questions.GetByIDs(dbc, questionIDs)
	if err != nil {
		return nil, internal("load_questions_failed", err)
	}
	byID := make(map[uuid.UUID]*types.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	lineage, err := u.deps.QuestionSets.GetLineage(dbc, attempt.QuestionSetID)
	if err != nil {
		return nil, internal("load_question_set_failed", err)
	}

	out := &AttemptDetail{
		Quiz: AttemptSummary{
			ID:             attempt.ID,
			QuestionSetID:  attempt.QuestionSetID,
			EarnedPoints:   attempt.EarnedPoints,
			TotalPoints:    attempt.TotalPoints,
			Percentage:     round2(attempt.Percentage),
			Passed:         u.deps.Policy.Passed(attempt.Percentage),
			TotalTime:      attempt.TimeSpent,
			StartedAt:      attempt.StartedAt,
			CompletedAt:    attempt.CompletedAt,
			TotalQuestions: len(answers),
		},
		Answers:   make([]AnswerDetail, 0, len(answers)),
		TimeStats: ComputeTimeStats(answers),
	}
	if lineage != nil {
		out.Quiz.Title = lineage.QuestionSetTitle
		out.Quiz.Difficulty = lineage.DifficultyLevelName
	}
	var stored FinalizeResult
	if len(attempt.Summary) > 0 && json.Unmarshal(attempt.Summary, &stored) == nil && stored.TotalQuestions > 0 {
		out.Quiz.TotalQuestions = stored.TotalQuestions
	}

	for _, a := range answers {
		if a.IsCorrect {
			out.Quiz.CorrectCount++
		}
		d := AnswerDetail{
			ID:           a.ID,
			QuestionID:   a.QuestionID,
			UserAnswer:   a.UserAnswer,
			IsCorrect:    a.IsCorrect,
			PointsEarned: a.PointsEarned,
			TimeSpent:    a.TimeSpent,
			AllOptions:   []OptionDetail{},
		}
		if q := byID[a.QuestionID]; q != nil {
			d.QuestionText = q.QuestionText
			d.QuestionType = q.QuestionType
			d.Explanation = q.Explanation
			if opt, ok := q.CorrectOption(); ok {
				d.CorrectOption = opt.OptionText
			}
			for _, o := range q.Options {
				d.AllOptions = append(d.AllOptions, OptionDetail{ID: o.ID, Text: o.OptionText, IsCorrect: o.IsCorrect})
			}
		}
		out.Answers = append(out.Answers, d)
	}
	return out, nil
}

type AttemptHistoryItem struct {
	AttemptID    uuid.UUID  `json:"attemptId"`
	EarnedPoints int        `json:"earnedPoints"`
	TotalPoints  int        `json:"totalPoints"`
	Percentage   float64    `json:"percentage"`
	Passed       bool       `json:"passed"`
	TimeSpent    int        `json:"timeSpent"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// ListCompletedAttempts returns the user's finished attempts on a set, newest first.
func (u Usecases) ListCompletedAttempts(ctx context.Context, userID, questionSetID uuid.UUID) ([]AttemptHistoryItem, error) {
	if userID == uuid.Nil {
		return nil, unauthorized()
	}
	if questionSetID == uuid.Nil {
		return nil, invalid("invalid_question_set_id")
	}
	rows, err := u.deps.Attempts.ListCompleted(dbctx.Context{Ctx: ctx}, userID, questionSetID)
	if err != nil {
		return nil, internal("list_attempts_failed", err)
	}
	out := make([]AttemptHistoryItem, 0, len(rows))
	for _, a := range rows {
		out = append(out, AttemptHistoryItem{
			AttemptID:    a.ID,
			EarnedPoints: a.EarnedPoints,
			TotalPoints:  a.TotalPoints,
			Percentage:   round2(a.Percentage),
			Passed:       u.deps.Policy.Passed(a.Percentage),
			TimeSpent:    a.TimeSpent,
			StartedAt:    a.StartedAt,
			CompletedAt:  a.CompletedAt,
		})
	}
	return out, nil
}
