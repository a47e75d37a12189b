package quiz

import (
	"time"

	"github.com/google/uuid"
)

// QuestionAnswer is the latest submission for one question within one attempt.
type QuestionAnswer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizAttemptID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_answer_attempt_question,priority:1" json:"quiz_attempt_id"`
	QuestionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_answer_attempt_question,priority:2" json:"question_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserAnswer    string    `gorm:"column:user_answer;type:text;not null" json:"user_answer"`
	IsCorrect     bool      `gorm:"column:is_correct;not null" json:"is_correct"`
	PointsEarned  int       `gorm:"column:points_earned;not null" json:"points_earned"`
	TimeSpent     int       `gorm:"column:time_spent;not null" json:"time_spent"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (QuestionAnswer) TableName() string { return "question_answer" }
