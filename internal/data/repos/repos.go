package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos/content"
	"github.com/yungbote/practice-backend/internal/data/repos/proficiency"
	"github.com/yungbote/practice-backend/internal/data/repos/quiz"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type QuestionSetRepo = content.QuestionSetRepo
type QuestionRepo = content.QuestionRepo
type HierarchyRepo = content.HierarchyRepo
type SlugPath = content.SlugPath
type Lineage = content.Lineage

type QuizAttemptRepo = quiz.QuizAttemptRepo
type QuestionAnswerRepo = quiz.QuestionAnswerRepo
type AttemptCompletion = quiz.Completion

type SkillProficiencyRepo = proficiency.SkillProficiencyRepo
type LearningAreaProficiencyRepo = proficiency.LearningAreaProficiencyRepo
type CourseProficiencyRepo = proficiency.CourseProficiencyRepo

func NewQuestionSetRepo(db *gorm.DB, baseLog *logger.Logger) QuestionSetRepo {
	return content.NewQuestionSetRepo(db, baseLog)
}
func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return content.NewQuestionRepo(db, baseLog)
}
func NewHierarchyRepo(db *gorm.DB, baseLog *logger.Logger) HierarchyRepo {
	return content.NewHierarchyRepo(db, baseLog)
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return quiz.NewQuizAttemptRepo(db, baseLog)
}
func NewQuestionAnswerRepo(db *gorm.DB, baseLog *logger.Logger) QuestionAnswerRepo {
	return quiz.NewQuestionAnswerRepo(db, baseLog)
}

func NewSkillProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) SkillProficiencyRepo {
	return proficiency.NewSkillProficiencyRepo(db, baseLog)
}
func NewLearningAreaProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) LearningAreaProficiencyRepo {
	return proficiency.NewLearningAreaProficiencyRepo(db, baseLog)
}
func NewCourseProficiencyRepo(db *gorm.DB, baseLog *logger.Logger) CourseProficiencyRepo {
	return proficiency.NewCourseProficiencyRepo(db, baseLog)
}
