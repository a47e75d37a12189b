package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// HierarchyRepo answers structural questions about the tree above question sets.
type HierarchyRepo interface {
	// ListSkillIDsByLearningArea and ListLearningAreaIDsByCourse include inactive
	// children; deactivating content does not rewrite earned proficiency.
	ListSkillIDsByLearningArea(dbc dbctx.Context, learningAreaID uuid.UUID) ([]uuid.UUID, error)
	ListLearningAreaIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	GetSkill(dbc dbctx.Context, id uuid.UUID) (*types.Skill, error)
	GetLearningArea(dbc dbctx.Context, id uuid.UUID) (*types.LearningArea, error)
	// LearningAreaIDsForSkills maps each skill to its learning area.
	LearningAreaIDsForSkills(dbc dbctx.Context, skillIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)
}

type hierarchyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHierarchyRepo(db *gorm.DB, baseLog *logger.Logger) HierarchyRepo {
	return &hierarchyRepo{db: db, log: baseLog.With("repo", "HierarchyRepo")}
}

func (r *hierarchyRepo) ListSkillIDsByLearningArea(dbc dbctx.Context, learningAreaID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if learningAreaID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Model(&types.Skill{}).
		Where("learning_area_id = ?", learningAreaID).
		Order("order_index ASC").
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *hierarchyRepo) ListLearningAreaIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if courseID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Model(&types.LearningArea{}).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Pluck("id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *hierarchyRepo) GetSkill(dbc dbctx.Context, id uuid.UUID) (*types.Skill, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Skill
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *hierarchyRepo) GetLearningArea(dbc dbctx.Context, id uuid.UUID) (*types.LearningArea, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.LearningArea
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *hierarchyRepo) LearningAreaIDsForSkills(dbc dbctx.Context, skillIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	out := map[uuid.UUID]uuid.UUID{}
	if len(skillIDs) == 0 {
		return out, nil
	}
	var rows []*types.Skill
	if err := dbc.Conn(r.db).
		Select("id", "learning_area_id").
		Where("id IN ?", skillIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s.LearningAreaID
	}
	return out, nil
}
