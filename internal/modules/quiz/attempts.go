package quiz

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/data/db"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

// GetOrCreateAttempt returns the user's in-progress attempt on the set, starting
// one if none exists. Concurrent callers converge on a single row: the partial
// unique index rejects the losers, who then read the winner's attempt.
func (u Usecases) GetOrCreateAttempt(ctx context.Context, userID, questionSetID uuid.UUID) (out *types.QuizAttempt, err error) {
	ctx, span := observability.StartSpan(ctx, "quiz", "get_or_create_attempt",
		observability.AttrUserID(userID), observability.AttrQuestionSetID(questionSetID))
	defer observability.FinishSpan(span, &err)

	if userID == uuid.Nil {
		return nil, unauthorized()
	}
	if questionSetID == uuid.Nil {
		return nil, invalid("invalid_question_set_id")
	}
	dbc := dbctx.Context{Ctx: ctx}

	set, err := u.deps.QuestionSets.GetActiveByID(dbc, questionSetID)
	if err != nil {
		return nil, internal("load_question_set_failed", err)
	}
	if set == nil {
		return nil, notFound("question_set_not_found")
	}

	existing, err := u.deps.Attempts.GetInProgress(dbc, userID, questionSetID)
	if err != nil {
		return nil, internal("load_attempt_failed", err)
	}
	if existing != nil {
		return existing, nil
	}

	row := &types.QuizAttempt{UserID: userID, QuestionSetID: questionSetID}
	if err := u.deps.Attempts.Create(dbc, row); err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, internal("create_attempt_failed", err)
		}
		winner, rerr := u.deps.Attempts.GetInProgress(dbc, userID, questionSetID)
		if rerr != nil {
			return nil, internal("load_attempt_failed", rerr)
		}
		if winner == nil {
			// The winner finalized in between; the caller may retry.
			return nil, internal("create_attempt_failed", err)
		}
		u.log.Debug("attempt creation raced, reusing winner", "user_id", userID, "attempt_id", winner.ID)
		return winner, nil
	}
	u.log.Info("attempt started", "user_id", userID, "attempt_id", row.ID, "question_set_id", questionSetID)
	return row, nil
}

// GetAttempt loads an attempt owned by userID.
func (u Usecases) GetAttempt(ctx context.Context, userID, attemptID uuid.UUID) (*types.QuizAttempt, error) {
	if userID == uuid.Nil {
		return nil, unauthorized()
	}
	if attemptID == uuid.Nil {
		return nil, invalid("invalid_attempt_id")
	}
	return u.loadOwnedAttempt(dbctx.Context{Ctx: ctx}, userID, attemptID, false)
}

func (u Usecases) loadOwnedAttempt(dbc dbctx.Context, userID, attemptID uuid.UUID, forUpdate bool) (*types.QuizAttempt, error) {
	var (
		row *types.QuizAttempt
		err error
	)
	if forUpdate {
		row, err = u.deps.Attempts.GetByIDForUpdate(dbc, attemptID)
	} else {
		row, err = u.deps.Attempts.GetByID(dbc, attemptID)
	}
	if err != nil {
		return nil, internal("load_attempt_failed", err)
	}
	if row == nil {
		return nil, notFound("attempt_not_found")
	}
	if row.UserID != userID {
		return nil, forbidden()
	}
	return row, nil
}
