package content

import (
	"time"

	"github.com/google/uuid"
)

// Course is the root of the content tree. Slugs are unique among siblings.
type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex:idx_course_slug" json:"slug"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	OrderIndex  int       `gorm:"column:order_index;not null" json:"order_index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Course) TableName() string { return "course" }

type LearningArea struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_learning_area_course_slug,priority:1" json:"course_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex:idx_learning_area_course_slug,priority:2" json:"slug"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	OrderIndex  int       `gorm:"column:order_index;not null" json:"order_index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (LearningArea) TableName() string { return "learning_area" }

type Skill struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LearningAreaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_skill_area_slug,priority:1" json:"learning_area_id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Slug           string    `gorm:"column:slug;not null;uniqueIndex:idx_skill_area_slug,priority:2" json:"slug"`
	Description    string    `gorm:"column:description;type:text" json:"description,omitempty"`
	IsActive       bool      `gorm:"column:is_active;not null" json:"is_active"`
	OrderIndex     int       `gorm:"column:order_index;not null" json:"order_index"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Skill) TableName() string { return "skill" }

type DifficultyLevel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SkillID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_difficulty_level_skill_slug,priority:1" json:"skill_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Slug       string    `gorm:"column:slug;not null;uniqueIndex:idx_difficulty_level_skill_slug,priority:2" json:"slug"`
	IsActive   bool      `gorm:"column:is_active;not null" json:"is_active"`
	OrderIndex int       `gorm:"column:order_index;not null" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (DifficultyLevel) TableName() string { return "difficulty_level" }
