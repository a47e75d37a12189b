package proficiency

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelBeginning    Level = "BEGINNING"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelSigma        Level = "SIGMA"
)

type SkillProficiency struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_skill_proficiency_user_skill,priority:1" json:"user_id"`
	SkillID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_skill_proficiency_user_skill,priority:2" json:"skill_id"`
	Score                 float64   `gorm:"column:score;not null" json:"score"`
	Level                 Level     `gorm:"column:level;not null" json:"level"`
	QuestionsAnswered     int       `gorm:"column:questions_answered;not null" json:"questions_answered"`
	QuestionSetsCompleted int       `gorm:"column:question_sets_completed;not null" json:"question_sets_completed"`
	LastUpdated           time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt             time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SkillProficiency) TableName() string { return "skill_proficiency" }

type LearningAreaProficiency struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learning_area_proficiency_user_area,priority:1" json:"user_id"`
	LearningAreaID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learning_area_proficiency_user_area,priority:2" json:"learning_area_id"`
	Score           float64   `gorm:"column:score;not null" json:"score"`
	Level           Level     `gorm:"column:level;not null" json:"level"`
	SkillsCompleted int       `gorm:"column:skills_completed;not null" json:"skills_completed"`
	TotalSkills     int       `gorm:"column:total_skills;not null" json:"total_skills"`
	LastUpdated     time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (LearningAreaProficiency) TableName() string { return "learning_area_proficiency" }

type CourseProficiency struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_proficiency_user_course,priority:1" json:"user_id"`
	CourseID               uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_course_proficiency_user_course,priority:2" json:"course_id"`
	Score                  float64   `gorm:"column:score;not null" json:"score"`
	Level                  Level     `gorm:"column:level;not null" json:"level"`
	LearningAreasCompleted int       `gorm:"column:learning_areas_completed;not null" json:"learning_areas_completed"`
	TotalLearningAreas     int       `gorm:"column:total_learning_areas;not null" json:"total_learning_areas"`
	LastUpdated            time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt              time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (CourseProficiency) TableName() string { return "course_proficiency" }
