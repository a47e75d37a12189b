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

type LearningAreaProficiencyRepo interface {
	Upsert(dbc dbctx.Context, row *types.LearningAreaProficiency) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearningAreaProficiency, error)
	ListByUserAndAreaIDs(dbc dbctx.Context, userID uuid.UUID, areaIDs []uuid.UUID) ([]*types.LearningAreaProficiency, error)
}

type CourseProficiencyRepo interface {
	Upsert(dbc dbctx.Context, row *types.CourseProficiency) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CourseProficiency, error)
}

type learningAreaProficiencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningAreaProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) LearningAreaProficiencyRepo {
	return &learningAreaProficiencyRepo{db: db, log: baseLog.With("repo", "LearningAreaProficiencyRepo")}
}

func (r *learningAreaProficiencyRepo) Upsert(dbc dbctx.Context, row *types.LearningAreaProficiency) error {
	if row == nil || row.UserID == uuid.Nil || row.LearningAreaID == uuid.Nil {
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
			Columns: []clause.Column{{Name: "user_id"}, {Name: "learning_area_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "level", "skills_completed", "total_skills", "last_updated",
			}),
		}).
		Create(row).Error
}

func (r *learningAreaProficiencyRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.LearningAreaProficiency, error) {
	out := []*types.LearningAreaProficiency{}
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

func (r *learningAreaProficiencyRepo) ListByUserAndAreaIDs(dbc dbctx.Context, userID uuid.UUID, areaIDs []uuid.UUID) ([]*types.LearningAreaProficiency, error) {
	out := []*types.LearningAreaProficiency{}
	if userID == uuid.Nil || len(areaIDs) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND learning_area_id IN ?", userID, areaIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type courseProficiencyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) CourseProficiencyRepo {
	return &courseProficiencyRepo{db: db, log: baseLog.With("repo", "CourseProficiencyRepo")}
}

func (r *courseProficiencyRepo) Upsert(dbc dbctx.Context, row *types.CourseProficiency) error {
	if row == nil || row.UserID == uuid.Nil || row.CourseID == uuid.Nil {
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
			Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "level", "learning_areas_completed", "total_learning_areas", "last_updated",
			}),
		}).
		Create(row).Error
}

func (r *courseProficiencyRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CourseProficiency, error) {
	out := []*types.CourseProficiency{}
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
