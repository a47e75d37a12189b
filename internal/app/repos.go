package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type Repos struct {
	QuestionSet             repos.QuestionSetRepo
	Question                repos.QuestionRepo
	Hierarchy               repos.HierarchyRepo
	QuizAttempt             repos.QuizAttemptRepo
	QuestionAnswer          repos.QuestionAnswerRepo
	SkillProficiency        repos.SkillProficiencyRepo
	LearningAreaProficiency repos.LearningAreaProficiencyRepo
	CourseProficiency       repos.CourseProficiencyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		QuestionSet:             repos.NewQuestionSetRepo(db, log),
		Question:                repos.NewQuestionRepo(db, log),
		Hierarchy:               repos.NewHierarchyRepo(db, log),
		QuizAttempt:             repos.NewQuizAttemptRepo(db, log),
		QuestionAnswer:          repos.NewQuestionAnswerRepo(db, log),
		SkillProficiency:        repos.NewSkillProficiencyRepo(db, log),
		LearningAreaProficiency: repos.NewLearningAreaProficiencyRepo(db, log),
		CourseProficiency:       repos.NewCourseProficiencyRepo(db, log),
	}
}
