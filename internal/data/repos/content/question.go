package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type QuestionRepo interface {
	// GetByID loads the question with its options ordered; nil when missing.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Question, error)
	ListActiveBySet(dbc dbctx.Context, questionSetID uuid.UUID) ([]*types.Question, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Question, error)
	// SumActive returns Σ points and the count of active questions in the set.
	SumActive(dbc dbctx.Context, questionSetID uuid.UUID) (points int, count int, err error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func orderedOptions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func (r *questionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Question, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Question
	if err := dbc.Conn(r.db).
		Preload("Options", orderedOptions).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *questionRepo) ListActiveBySet(dbc dbctx.Context, questionSetID uuid.UUID) ([]*types.Question, error) {
	out := []*types.Question{}
	if questionSetID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Preload("Options", orderedOptions).
		Where("question_set_id = ? AND is_active = ?", questionSetID, true).
		Order("order_index ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Question, error) {
	out := []*types.Question{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Preload("Options", orderedOptions).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *questionRepo) SumActive(dbc dbctx.Context, questionSetID uuid.UUID) (int, int, error) {
	var agg struct {
		Points int
		Count  int
	}
	if err := dbc.Conn(r.db).
		Model(&types.Question{}).
		Select("COALESCE(SUM(points), 0) AS points, COUNT(*) AS count").
		Where("question_set_id = ? AND is_active = ?", questionSetID, true).
		Scan(&agg).Error; err != nil {
		return 0, 0, err
	}
	return agg.Points, agg.Count, nil
}
