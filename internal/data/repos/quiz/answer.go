package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type QuestionAnswerRepo interface {
	// Upsert stores the answer keyed by (attempt, question); the latest write wins.
	Upsert(dbc dbctx.Context, answer *types.QuestionAnswer) error
	ListByAttempt(dbc dbctx.Context, attemptID uuid.UUID) ([]*types.QuestionAnswer, error)
}

type questionAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionAnswerRepo(db *gorm.DB, baseLog *logger.Logger) QuestionAnswerRepo {
	return &questionAnswerRepo{db: db, log: baseLog.With("repo", "QuestionAnswerRepo")}
}

func (r *questionAnswerRepo) Upsert(dbc dbctx.Context, answer *types.QuestionAnswer) error {
	if answer == nil {
		return nil
	}
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	now := time.Now().UTC()
	answer.UpdatedAt = now
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = now
	}
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "quiz_attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_answer", "is_correct", "points_earned", "time_spent", "updated_at",
			}),
		}).
		Create(answer).Error
}

func (r *questionAnswerRepo) ListByAttempt(dbc dbctx.Context, attemptID uuid.UUID) ([]*types.QuestionAnswer, error) {
	out := []*types.QuestionAnswer{}
	if attemptID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("quiz_attempt_id = ?", attemptID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
