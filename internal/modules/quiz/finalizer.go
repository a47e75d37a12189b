package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/db"
	"github.com/yungbote/practice-backend/internal/data/repos"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/apierr"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/realtime/bus"
)

// maxFinalizeAttempts bounds reruns after serialization, deadlock or lock-timeout
// failures.
const maxFinalizeAttempts = 3

// FinalizeResult is the scored outcome of an attempt. It is also stored on the
// attempt as its summary so repeated finalize calls answer identically.
type FinalizeResult struct {
	AttemptID      uuid.UUID `json:"attemptId"`
	QuestionSetID  uuid.UUID `json:"questionSetId"`
	EarnedPoints   int       `json:"earnedPoints"`
	TotalPoints    int       `json:"totalPoints"`
	Percentage     float64   `json:"percentage"`
	Passed         bool      `json:"passed"`
	TimeSpent      int       `json:"timeSpent"`
	CorrectCount   int       `json:"correctCount"`
	TotalQuestions int       `json:"totalQuestions"`
	AnsweredCount  int       `json:"answeredCount"`
	CompletedAt    time.Time `json:"completedAt"`
	TimeStats      TimeStats `json:"timeStats"`
}

// Finalize scores the attempt and closes it. A second call, or one that loses a
// race with a concurrent finalize, gets the stored result together with an error
// wrapping ErrAlreadyFinalized. Proficiency propagation and the completion event
// run after commit; their failures are logged and never fail the call.
func (u Usecases) Finalize(ctx context.Context, userID, attemptID uuid.UUID) (res FinalizeResult, err error) {
	ctx, span := observability.StartSpan(ctx, "quiz", "finalize",
		observability.AttrUserID(userID), observability.AttrAttemptID(attemptID))
	defer observability.FinishSpan(span, &err)

	if userID == uuid.Nil {
		return FinalizeResult{}, unauthorized()
	}
	if attemptID == uuid.Nil {
		return FinalizeResult{}, invalid("invalid_attempt_id")
	}

	var (
		rawPercentage    float64
		alreadyFinalized bool
		txErr            error
	)
	for try := 1; ; try++ {
		res, rawPercentage, alreadyFinalized, txErr = u.finalizeOnce(ctx, userID, attemptID)
		if txErr == nil || try >= maxFinalizeAttempts || ctx.Err() != nil || !db.IsRetryable(txErr) {
			break
		}
		u.log.Warn("finalize hit transient storage error, retrying",
			"attempt_id", attemptID, "try", try, "error", txErr)
	}
	if txErr != nil {
		return FinalizeResult{}, txErr
	}
	if alreadyFinalized {
		return res, apierr.New(http.StatusConflict, "already_finalized", ErrAlreadyFinalized)
	}

	u.log.Info("attempt finalized",
		"user_id", userID,
		"attempt_id", res.AttemptID,
		"earned_points", res.EarnedPoints,
		"total_points", res.TotalPoints,
		"percentage", res.Percentage,
		"passed", res.Passed,
	)
	u.afterFinalize(context.WithoutCancel(ctx), userID, res, rawPercentage)
	return res, nil
}

// finalizeOnce runs one locked scoring transaction.
func (u Usecases) finalizeOnce(ctx context.Context, userID, attemptID uuid.UUID) (res FinalizeResult, rawPercentage float64, alreadyFinalized bool, err error) {
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		attempt, err := u.loadOwnedAttempt(dbc, userID, attemptID, true)
		if err != nil {
			return err
		}
		if attempt.IsCompleted {
			res = u.storedResult(attempt)
			alreadyFinalized = true
			return nil
		}

		totalPoints, totalQuestions, err := u.deps.Questions.SumActive(dbc, attempt.QuestionSetID)
		if err != nil {
			return internal("sum_questions_failed", err)
		}
		answers, err := u.deps.Answers.ListByAttempt(dbc, attempt.ID)
		if err != nil {
			return internal("load_answers_failed", err)
		}

		earned, spent, correct := 0, 0, 0
		for _, a := range answers {
			earned += a.PointsEarned
			spent += a.TimeSpent
			if a.IsCorrect {
				correct++
			}
		}
		rawPercentage = percentage(earned, totalPoints)
		res = FinalizeResult{
			AttemptID:      attempt.ID,
			QuestionSetID:  attempt.QuestionSetID,
			EarnedPoints:   earned,
			TotalPoints:    totalPoints,
			Percentage:     round2(rawPercentage),
			Passed:         u.deps.Policy.Passed(rawPercentage),
			TimeSpent:      spent,
			CorrectCount:   correct,
			TotalQuestions: totalQuestions,
			AnsweredCount:  len(answers),
			CompletedAt:    time.Now().UTC(),
			TimeStats:      ComputeTimeStats(answers),
		}
		summary, err := json.Marshal(res)
		if err != nil {
			return internal("encode_summary_failed", err)
		}

		won, err := u.deps.Attempts.CompleteIfOpen(dbc, attempt.ID, repos.AttemptCompletion{
			EarnedPoints: earned,
			TotalPoints:  totalPoints,
			Percentage:   rawPercentage,
			TimeSpent:    spent,
			CompletedAt:  res.CompletedAt,
			Summary:      datatypes.JSON(summary),
		})
		if err != nil {
			return internal("complete_attempt_failed", err)
		}
		if !won {
			stored, err := u.deps.Attempts.GetByID(dbc, attempt.ID)
			if err != nil {
				return internal("load_attempt_failed", err)
			}
			if stored == nil {
				return notFound("attempt_not_found")
			}
			res = u.storedResult(stored)
			alreadyFinalized = true
		}
		return nil
	})
	if err != nil {
		return FinalizeResult{}, 0, false, err
	}
	return res, rawPercentage, alreadyFinalized, nil
}

// afterFinalize propagates proficiency and announces the completion. Both are
// best effort; the attempt is already committed.
func (u Usecases) afterFinalize(ctx context.Context, userID uuid.UUID, res FinalizeResult, rawPercentage float64) {
	var skillID uuid.UUID
	lineage, err := u.deps.QuestionSets.GetLineage(dbctx.Context{Ctx: ctx}, res.QuestionSetID)
	switch {
	case err != nil:
		u.log.Error("load question set lineage failed", "attempt_id", res.AttemptID, "error", err)
	case lineage == nil:
		u.log.Warn("question set lineage missing", "attempt_id", res.AttemptID, "question_set_id", res.QuestionSetID)
	default:
		skillID = lineage.SkillID
	}

	if u.deps.Proficiency != nil && skillID != uuid.Nil {
		if _, err := u.deps.Proficiency.Propagate(ctx, userID, skillID, rawPercentage, res.AnsweredCount); err != nil {
			u.log.Error("proficiency propagation failed",
				"user_id", userID, "attempt_id", res.AttemptID, "skill_id", skillID, "error", err)
		}
	}

	ev := bus.Event{
		Type:       bus.EventQuizCompleted,
		UserID:     userID,
		OccurredAt: res.CompletedAt,
		Data: map[string]any{
			"attemptId":     res.AttemptID.String(),
			"questionSetId": res.QuestionSetID.String(),
			"percentage":    res.Percentage,
			"passed":        res.Passed,
		},
	}
	if skillID != uuid.Nil {
		ev.Data["skillId"] = skillID.String()
	}
	if err := u.deps.Bus.Publish(ctx, ev); err != nil {
		u.log.Warn("publish quiz completed failed", "attempt_id", res.AttemptID, "error", err)
	}
}

// storedResult rebuilds the result of a completed attempt, preferring the summary
// written at finalize time.
func (u Usecases) storedResult(a *types.QuizAttempt) FinalizeResult {
	if len(a.Summary) > 0 {
		var out FinalizeResult
		if err := json.Unmarshal(a.Summary, &out); err == nil && out.AttemptID == a.ID {
			return out
		} else if err != nil {
			u.log.Warn("attempt summary unreadable", "attempt_id", a.ID, "error", err)
		}
	}
	out := FinalizeResult{
		AttemptID:     a.ID,
		QuestionSetID: a.QuestionSetID,
		EarnedPoints:  a.EarnedPoints,
		TotalPoints:   a.TotalPoints,
		Percentage:    round2(a.Percentage),
		Passed:        u.deps.Policy.Passed(a.Percentage),
		TimeSpent:     a.TimeSpent,
	}
	if a.CompletedAt != nil {
		out.CompletedAt = *a.CompletedAt
	}
	return out
}

func percentage(earned, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(earned) / float64(total) * 100
}

// IsAlreadyFinalized reports whether err came from finalizing a closed attempt.
func IsAlreadyFinalized(err error) bool {
	return errors.Is(err, ErrAlreadyFinalized)
}
