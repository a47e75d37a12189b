package content

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

// SlugPath addresses a question set through the content tree.
type SlugPath struct {
	Course       string
	LearningArea string
	Skill        string
	Level        string
	QuestionSet  string
}

// Lineage is a question set together with the ids and names of its ancestors.
type Lineage struct {
	QuestionSetID       uuid.UUID
	QuestionSetTitle    string
	DifficultyLevelID   uuid.UUID
	DifficultyLevelName string
	SkillID             uuid.UUID
	SkillName           string
	LearningAreaID      uuid.UUID
	CourseID            uuid.UUID
}

type QuestionSetRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuestionSet, error)
	GetActiveByID(dbc dbctx.Context, id uuid.UUID) (*types.QuestionSet, error)
	GetLineage(dbc dbctx.Context, id uuid.UUID) (*Lineage, error)
	ResolveActive(dbc dbctx.Context, path SlugPath) (*Lineage, error)
	RecomputeTotals(dbc dbctx.Context, id uuid.UUID) error
}

type questionSetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionSetRepo(db *gorm.DB, baseLog *logger.Logger) QuestionSetRepo {
	return &questionSetRepo{db: db, log: baseLog.With("repo", "QuestionSetRepo")}
}

func (r *questionSetRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.QuestionSet, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.QuestionSet
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *questionSetRepo) GetActiveByID(dbc dbctx.Context, id uuid.UUID) (*types.QuestionSet, error) {
	row, err := r.GetByID(dbc, id)
	if err != nil || row == nil || !row.IsActive {
		return nil, err
	}
	return row, nil
}

const lineageSelect = `
	question_set.id AS question_set_id,
	question_set.title AS question_set_title,
	difficulty_level.id AS difficulty_level_id,
	difficulty_level.name AS difficulty_level_name,
	skill.id AS skill_id,
	skill.name AS skill_name,
	learning_area.id AS learning_area_id,
	learning_area.course_id AS course_id`

func (r *questionSetRepo) lineageQuery(dbc dbctx.Context) *gorm.DB {
	return dbc.Conn(r.db).
		Table("question_set").
		Select(lineageSelect).
		Joins("JOIN difficulty_level ON difficulty_level.id = question_set.difficulty_level_id").
		Joins("JOIN skill ON skill.id = difficulty_level.skill_id").
		Joins("JOIN learning_area ON learning_area.id = skill.learning_area_id")
}

func (r *questionSetRepo) GetLineage(dbc dbctx.Context, id uuid.UUID) (*Lineage, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []Lineage
	if err := r.lineageQuery(dbc).
		Where("question_set.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ResolveActive follows the slug path; every node on it must be active.
func (r *questionSetRepo) ResolveActive(dbc dbctx.Context, path SlugPath) (*Lineage, error) {
	var rows []Lineage
	if err := r.lineageQuery(dbc).
		Joins("JOIN course ON course.id = learning_area.course_id").
		Where("course.slug = ? AND course.is_active = ?", path.Course, true).
		Where("learning_area.slug = ? AND learning_area.is_active = ?", path.LearningArea, true).
		Where("skill.slug = ? AND skill.is_active = ?", path.Skill, true).
		Where("difficulty_level.slug = ? AND difficulty_level.is_active = ?", path.Level, true).
		Where("question_set.slug = ? AND question_set.is_active = ?", path.QuestionSet, true).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// RecomputeTotals rewrites total_points/total_questions from the active questions.
func (r *questionSetRepo) RecomputeTotals(dbc dbctx.Context, id uuid.UUID) error {
	var agg struct {
		Points int
		Count  int
	}
	if err := dbc.Conn(r.db).
		Model(&types.Question{}).
		Select("COALESCE(SUM(points), 0) AS points, COUNT(*) AS count").
		Where("question_set_id = ? AND is_active = ?", id, true).
		Scan(&agg).Error; err != nil {
		return err
	}
	return dbc.Conn(r.db).
		Model(&types.QuestionSet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_points":    agg.Points,
			"total_questions": agg.Count,
		}).Error
}
