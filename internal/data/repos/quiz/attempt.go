package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// Completion carries the score fields written when an attempt is finalized.
type Completion struct {
	EarnedPoints int
	TotalPoints  int
	Percentage   float64
	TimeSpent    int
	CompletedAt  time.Time
	Summary      datatypes.JSON
}

type QuizAttemptRepo interface {
	// Create inserts an in-progress attempt. A second in-progress attempt for the
	// same (user, set) fails with a unique violation.
	Create(dbc dbctx.Context, attempt *types.QuizAttempt) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuizAttempt, error)
	// GetByIDForUpdate row-locks the attempt on dialects that support it.
	GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.QuizAttempt, error)
	GetInProgress(dbc dbctx.Context, userID, questionSetID uuid.UUID) (*types.QuizAttempt, error)
	// CompleteIfOpen applies c only while the attempt is still in progress and
	// reports whether this call performed the transition.
	CompleteIfOpen(dbc dbctx.Context, id uuid.UUID, c Completion) (bool, error)
	ListCompleted(dbc dbctx.Context, userID, questionSetID uuid.UUID) ([]*types.QuizAttempt, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return &quizAttemptRepo{db: db, log: baseLog.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) Create(dbc dbctx.Context, attempt *types.QuizAttempt) error {
	if attempt == nil {
		return nil
	}
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = time.Now().UTC()
	}
	return dbc.Conn(r.db).Create(attempt).Error
}

func (r *quizAttemptRepo) first(q *gorm.DB) (*types.QuizAttempt, error) {
	var rows []*types.QuizAttempt
	if err := q.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *quizAttemptRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuizAttempt, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.Conn(r.db).Where("id = ?", id))
}

func (r *quizAttemptRepo) GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.QuizAttempt, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.Conn(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *quizAttemptRepo) GetInProgress(dbc dbctx.Context, userID, questionSetID uuid.UUID) (*types.QuizAttempt, error) {
	if userID == uuid.Nil || questionSetID == uuid.Nil {
		return nil, nil
	}
	return r.first(dbc.Conn(r.db).
		Where("user_id = ? AND question_set_id = ? AND is_completed = ?", userID, questionSetID, false).
		Order("started_at DESC"))
}

func (r *quizAttemptRepo) CompleteIfOpen(dbc dbctx.Context, id uuid.UUID, c Completion) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.QuizAttempt{}).
		Where("id = ? AND is_completed = ?", id, false).
		Updates(map[string]interface{}{
			"earned_points": c.EarnedPoints,
			"total_points":  c.TotalPoints,
			"percentage":    c.Percentage,
			"time_spent":    c.TimeSpent,
			"completed_at":  c.CompletedAt,
			"is_completed":  true,
			"summary":       c.Summary,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *quizAttemptRepo) ListCompleted(dbc dbctx.Context, userID, questionSetID uuid.UUID) ([]*types.QuizAttempt, error) {
	out := []*types.QuizAttempt{}
	if userID == uuid.Nil || questionSetID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND question_set_id = ? AND is_completed = ?", userID, questionSetID, true).
		Order("completed_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
