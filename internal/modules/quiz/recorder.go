package quiz

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/apierr"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

type RecordAnswerInput struct {
	UserID     uuid.UUID
	AttemptID  uuid.UUID
	QuestionID uuid.UUID
	Answer     string
	TimeSpent  int // seconds
}

// RecordAnswer grades one answer and stores it against the attempt. Resubmitting a
// question replaces the earlier answer. The attempt row is locked but never written.
func (u Usecases) RecordAnswer(ctx context.Context, in RecordAnswerInput) (out Evaluation, err error) {
	ctx, span := observability.StartSpan(ctx, "quiz", "record_answer",
		observability.AttrUserID(in.UserID), observability.AttrAttemptID(in.AttemptID))
	defer observability.FinishSpan(span, &err)

	if in.UserID == uuid.Nil {
		return Evaluation{}, unauthorized()
	}
	if in.AttemptID == uuid.Nil {
		return Evaluation{}, invalid("invalid_attempt_id")
	}
	if in.QuestionID == uuid.Nil {
		return Evaluation{}, invalid("missing_question_id")
	}
	if strings.TrimSpace(in.Answer) == "" {
		return Evaluation{}, invalid("missing_answer")
	}
	if in.TimeSpent < 0 {
		return Evaluation{}, invalid("invalid_time_spent")
	}
	var (
		ev        Evaluation
		attemptID uuid.UUID
	)
	// Holds the attempt row lock that Finalize also takes.
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		attempt, err := u.loadOwnedAttempt(dbc, in.UserID, in.AttemptID, true)
		if err != nil {
			return err
		}
		if attempt.IsCompleted {
			return apierr.New(http.StatusConflict, "attempt_completed", ErrAttemptCompleted)
		}
		attemptID = attempt.ID

		q, err := u.deps.Questions.GetByID(dbc, in.QuestionID)
		if err != nil {
			return internal("load_question_failed", err)
		}
		if q == nil || !q.IsActive {
			return notFound("question_not_found")
		}
		if q.QuestionSetID != attempt.QuestionSetID {
			u.log.Error("answer submitted for question outside attempt's set",
				"user_id", in.UserID,
				"attempt_id", attempt.ID,
				"question_id", q.ID,
				"attempt_question_set_id", attempt.QuestionSetID,
				"question_set_id", q.QuestionSetID,
			)
			return apierr.New(http.StatusBadRequest, "attempt_question_mismatch", ErrMismatch)
		}

		ev = Evaluate(q, in.Answer)
		row := &types.QuestionAnswer{
			QuizAttemptID: attempt.ID,
			UserID:        in.UserID,
			QuestionID:    q.ID,
			UserAnswer:    in.Answer,
			IsCorrect:     ev.IsCorrect,
			PointsEarned:  ev.PointsEarned,
			TimeSpent:     in.TimeSpent,
		}
		if err := u.deps.Answers.Upsert(dbc, row); err != nil {
			return internal("save_answer_failed", err)
		}
		return nil
	})
	if err != nil {
		return Evaluation{}, err
	}
	u.log.Debug("answer recorded", "user_id", in.UserID, "attempt_id", attemptID, "question_id", in.QuestionID, "is_correct", ev.IsCorrect)
	return ev, nil
}
