package content

import (
	"time"

	"github.com/google/uuid"
)

// QuestionSet is the unit a student attempts. TotalPoints and TotalQuestions are
// denormalized from the active questions and kept in sync by the content repo.
type QuestionSet struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DifficultyLevelID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_set_level_slug,priority:1" json:"difficulty_level_id"`
	Title             string    `gorm:"column:title;not null" json:"title"`
	Slug              string    `gorm:"column:slug;not null;uniqueIndex:idx_question_set_level_slug,priority:2" json:"slug"`
	Description       string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Number            int       `gorm:"column:number;not null" json:"number"`
	EstimatedMinutes  int       `gorm:"column:estimated_minutes;not null" json:"estimated_minutes"`
	TotalPoints       int       `gorm:"column:total_points;not null" json:"total_points"`
	TotalQuestions    int       `gorm:"column:total_questions;not null" json:"total_questions"`
	IsActive          bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (QuestionSet) TableName() string { return "question_set" }
