package proficiency

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type SkillProficiencyRepo interface {
	Get(dbc dbctx.Context, userID, skillID uuid.UUID) (*types.SkillProficiency, error)
	GetForUpdate(dbc dbctx.Context, userID, skillID uuid.UUID) (*types.SkillProficiency, error)
	Upsert(dbc dbctx.Context, row *types.SkillProficiency) error
	// InsertIfAbsent creates row unless (user, skill) already exists and reports
	// whether it did.
	InsertIfAbsent(dbc dbctx.Context, row *types.SkillProficiency) (bool, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.SkillProficiency, error)
	ListByUserAndSkillIDs(dbc dbctx.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]*types.SkillProficiency, error)
	// ListUserIDs returns every user with at least one skill row.
	ListUserIDs(dbc dbctx.Context) ([]uuid.UUID, error)
}

type skillProficiencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) SkillProficiencyRepo {
	return &skillProficiencyRepo{db: db, log: baseLog.With("repo", "SkillProficiencyRepo")}
}

func (r *skillProficiencyRepo) get(q *gorm.DB, userID, skillID uuid.UUID) (*types.SkillProficiency, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.SkillProficiency
	if err := q.Where("user_id = ? AND skill_id = ?", userID, skillID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *skillProficiencyRepo) Get(dbc dbctx.Context, userID, skillID uuid.UUID) (*types.SkillProficiency, error) {
	return r.get(dbc.Conn(r.db), userID, skillID)
}

func (r *skillProficiencyRepo) GetForUpdate(dbc dbctx.Context, userID, skillID uuid.UUID) (*types.SkillProficiency, error) {
	return r.get(dbc.Conn(r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID, skillID)
}

func (r *skillProficiencyRepo) Upsert(dbc dbctx.Context, row *types.SkillProficiency) error {
	if row == nil || row.UserID == uuid.Nil || row.SkillID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	return dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "level", "questions_answered", "question_sets_completed", "last_updated",
			}),
		}).
		Create(row).Error
}

func (r *skillProficiencyRepo) InsertIfAbsent(dbc dbctx.Context, row *types.SkillProficiency) (bool, error) {
	if row == nil || row.UserID == uuid.Nil || row.SkillID == uuid.Nil {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	res := dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *skillProficiencyRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.SkillProficiency, error) {
	out := []*types.SkillProficiency{}
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("last_updated DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *skillProficiencyRepo) ListByUserAndSkillIDs(dbc dbctx.Context, userID uuid.UUID, skillIDs []uuid.UUID) ([]*types.SkillProficiency, error) {
	out := []*types.SkillProficiency{}
	if userID == uuid.Nil || len(skillIDs) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND skill_id IN ?", userID, skillIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *skillProficiencyRepo) ListUserIDs(dbc dbctx.Context) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if err := dbc.Conn(r.db).
		Model(&types.SkillProficiency{}).
		Distinct("user_id").
		Pluck("user_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
