package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/practice-backend/internal/domain"
)

// Tree is one active branch course → area → skill → level → set.
type Tree struct {
	Course *types.Course
	Area   *types.LearningArea
	Skill  *types.Skill
	Level  *types.DifficultyLevel
	Set    *types.QuestionSet
}

func create(tb testing.TB, ctx context.Context, tx *gorm.DB, what string, v any) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed %s: %v", what, err)
	}
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Course {
	tb.Helper()
	c := &types.Course{ID: uuid.New(), Name: "Course " + slug, Slug: slug, IsActive: true}
	create(tb, ctx, tx, "course", c)
	return c
}

func SeedLearningArea(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, slug string) *types.LearningArea {
	tb.Helper()
	a := &types.LearningArea{ID: uuid.New(), CourseID: courseID, Name: "Area " + slug, Slug: slug, IsActive: true}
	create(tb, ctx, tx, "learning area", a)
	return a
}

func SeedSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, areaID uuid.UUID, slug string) *types.Skill {
	tb.Helper()
	s := &types.Skill{ID: uuid.New(), LearningAreaID: areaID, Name: "Skill " + slug, Slug: slug, IsActive: true}
	create(tb, ctx, tx, "skill", s)
	return s
}

func SeedDifficultyLevel(tb testing.TB, ctx context.Context, tx *gorm.DB, skillID uuid.UUID, slug string) *types.DifficultyLevel {
	tb.Helper()
	l := &types.DifficultyLevel{ID: uuid.New(), SkillID: skillID, Name: "Level " + slug, Slug: slug, IsActive: true}
	create(tb, ctx, tx, "difficulty level", l)
	return l
}

func SeedQuestionSet(tb testing.TB, ctx context.Context, tx *gorm.DB, levelID uuid.UUID, slug string) *types.QuestionSet {
	tb.Helper()
	s := &types.QuestionSet{
		ID:                uuid.New(),
		DifficultyLevelID: levelID,
		Title:             "Set " + slug,
		Slug:              slug,
		Number:            1,
		EstimatedMinutes:  10,
		IsActive:          true,
	}
	create(tb, ctx, tx, "question set", s)
	return s
}

// SeedTree seeds a full active branch whose slugs are all derived from prefix.
func SeedTree(tb testing.TB, ctx context.Context, tx *gorm.DB, prefix string) *Tree {
	tb.Helper()
	t := &Tree{}
	t.Course = SeedCourse(tb, ctx, tx, prefix+"-course")
	t.Area = SeedLearningArea(tb, ctx, tx, t.Course.ID, prefix+"-area")
	t.Skill = SeedSkill(tb, ctx, tx, t.Area.ID, prefix+"-skill")
	t.Level = SeedDifficultyLevel(tb, ctx, tx, t.Skill.ID, prefix+"-level")
	t.Set = SeedQuestionSet(tb, ctx, tx, t.Level.ID, prefix+"-set")
	return t
}

// SeedChoiceQuestion seeds a MULTIPLE_CHOICE question; option correctIdx is correct.
func SeedChoiceQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, setID uuid.UUID, points int, options []string, correctIdx int) *types.Question {
	tb.Helper()
	return seedQuestion(tb, ctx, tx, setID, types.QuestionTypeMultipleChoice, points, options, func(i int) bool { return i == correctIdx })
}

// SeedShortAnswerQuestion seeds a SHORT_ANSWER question accepting each of accepted.
func SeedShortAnswerQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, setID uuid.UUID, points int, accepted ...string) *types.Question {
	tb.Helper()
	return seedQuestion(tb, ctx, tx, setID, types.QuestionTypeShortAnswer, points, accepted, func(int) bool { return true })
}

func seedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, setID uuid.UUID, qt types.QuestionType, points int, options []string, correct func(int) bool) *types.Question {
	tb.Helper()
	var order int64
	if err := tx.WithContext(ctx).Model(&types.Question{}).Where("question_set_id = ?", setID).Count(&order).Error; err != nil {
		tb.Fatalf("count questions: %v", err)
	}
	q := &types.Question{
		ID:            uuid.New(),
		QuestionSetID: setID,
		QuestionType:  qt,
		QuestionText:  fmt.Sprintf("Question %d", order+1),
		Points:        points,
		Explanation:   "because",
		IsActive:      true,
		OrderIndex:    int(order),
	}
	for i, text := range options {
		q.Options = append(q.Options, types.QuestionOption{
			ID:         uuid.New(),
			OptionText: text,
			IsCorrect:  correct(i),
			OrderIndex: i,
		})
	}
	create(tb, ctx, tx, "question", q)
	return q
}

// Deactivate flips is_active off for the given row.
func Deactivate(tb testing.TB, ctx context.Context, tx *gorm.DB, model any, id uuid.UUID) {
	tb.Helper()
	if err := tx.WithContext(ctx).Model(model).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		tb.Fatalf("deactivate: %v", err)
	}
}
