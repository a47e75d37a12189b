package content

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionTypeShortAnswer    QuestionType = "SHORT_ANSWER"
)

// Question belongs to one QuestionSet. For MULTIPLE_CHOICE and TRUE_FALSE exactly one
// option is correct; for SHORT_ANSWER every option is an accepted answer.
type Question struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionSetID uuid.UUID        `gorm:"type:uuid;not null;index" json:"question_set_id"`
	QuestionType  QuestionType     `gorm:"column:question_type;not null" json:"question_type"`
	QuestionText  string           `gorm:"column:question_text;type:text;not null" json:"question_text"`
	Points        int              `gorm:"column:points;not null" json:"points"`
	Explanation   string           `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	IsActive      bool             `gorm:"column:is_active;not null;index" json:"is_active"`
	OrderIndex    int              `gorm:"column:order_index;not null" json:"order_index"`
	Options       []QuestionOption `gorm:"foreignKey:QuestionID;references:ID" json:"options,omitempty"`
	CreatedAt     time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string { return "question" }

type QuestionOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	OptionText string    `gorm:"column:option_text;type:text;not null" json:"option_text"`
	IsCorrect  bool      `gorm:"column:is_correct;not null" json:"is_correct"`
	OrderIndex int       `gorm:"column:order_index;not null" json:"order_index"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (QuestionOption) TableName() string { return "question_option" }

// CorrectOption returns the first option flagged correct.
func (q *Question) CorrectOption() (QuestionOption, bool) {
	if q == nil {
		return QuestionOption{}, false
	}
	for _, o := range q.Options {
		if o.IsCorrect {
			return o, true
		}
	}
	return QuestionOption{}, false
}
