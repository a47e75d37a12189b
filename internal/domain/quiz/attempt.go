package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt is one sitting of a question set. At most one attempt per
// (user, question set) may be in progress; the partial unique index
// idx_quiz_attempt_in_progress enforces it. Score fields are written once, by finalize.
type QuizAttempt struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_quiz_attempt_user_set,priority:1" json:"user_id"`
	QuestionSetID uuid.UUID      `gorm:"type:uuid;not null;index:idx_quiz_attempt_user_set,priority:2" json:"question_set_id"`
	EarnedPoints  int            `gorm:"column:earned_points;not null" json:"earned_points"`
	TotalPoints   int            `gorm:"column:total_points;not null" json:"total_points"`
	Percentage    float64        `gorm:"column:percentage;not null" json:"percentage"`
	StartedAt     time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt   *time.Time     `gorm:"column:completed_at;index" json:"completed_at,omitempty"`
	TimeSpent     int            `gorm:"column:time_spent;not null" json:"time_spent"`
	IsCompleted   bool           `gorm:"column:is_completed;not null" json:"is_completed"`
	Summary       datatypes.JSON `gorm:"column:summary" json:"summary,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }
