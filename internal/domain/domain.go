package domain

import (
	"github.com/yungbote/practice-backend/internal/domain/content"
	"github.com/yungbote/practice-backend/internal/domain/proficiency"
	"github.com/yungbote/practice-backend/internal/domain/quiz"
)

const (
	QuestionTypeMultipleChoice = content.QuestionTypeMultipleChoice
	QuestionTypeTrueFalse      = content.QuestionTypeTrueFalse
	QuestionTypeShortAnswer    = content.QuestionTypeShortAnswer

	LevelBeginning    = proficiency.LevelBeginning
	LevelIntermediate = proficiency.LevelIntermediate
	LevelAdvanced     = proficiency.LevelAdvanced
	LevelSigma        = proficiency.LevelSigma
)

type (
	Course          = content.Course
	LearningArea    = content.LearningArea
	Skill           = content.Skill
	DifficultyLevel = content.DifficultyLevel
	QuestionSet     = content.QuestionSet
	Question        = content.Question
	QuestionOption  = content.QuestionOption
	QuestionType    = content.QuestionType

	QuizAttempt    = quiz.QuizAttempt
	QuestionAnswer = quiz.QuestionAnswer

	ProficiencyLevel        = proficiency.Level
	SkillProficiency        = proficiency.SkillProficiency
	LearningAreaProficiency = proficiency.LearningAreaProficiency
	CourseProficiency       = proficiency.CourseProficiency
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&Course{},
		&LearningArea{},
		&Skill{},
		&DifficultyLevel{},
		&QuestionSet{},
		&Question{},
		&QuestionOption{},

		&QuizAttempt{},
		&QuestionAnswer{},

		&SkillProficiency{},
		&LearningAreaProficiency{},
		&CourseProficiency{},
	}
}
