package quiz

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/data/repos"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/cache"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

// OptionView is an answer option as shown to a student: no correctness flag.
type OptionView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	OrderIndex int       `json:"orderIndex"`
}

type QuestionView struct {
	ID           uuid.UUID          `json:"id"`
	QuestionType types.QuestionType `json:"questionType"`
	QuestionText string             `json:"questionText"`
	Points       int                `json:"points"`
	OrderIndex   int                `json:"orderIndex"`
	Options      []OptionView       `json:"options"`
}

// QuestionSetView is a question set ready to be taken. It never carries answers
// or explanations.
type QuestionSetView struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description,omitempty"`
	Number           int            `json:"number"`
	EstimatedMinutes int            `json:"estimatedMinutes"`
	DifficultyLevel  string         `json:"difficultyLevel"`
	Skill            string         `json:"skill"`
	TotalPoints      int            `json:"totalPoints"`
	TotalQuestions   int            `json:"totalQuestions"`
	Questions        []QuestionView `json:"questions"`
}

// ResolveQuestionSet looks a set up by its slug path. Every node on the path must
// be active. Results are cached per path.
func (u Usecases) ResolveQuestionSet(ctx context.Context, path repos.SlugPath) (out *QuestionSetView, err error) {
	ctx, span := observability.StartSpan(ctx, "quiz", "resolve_question_set")
	defer observability.FinishSpan(span, &err)

	path = normalizeSlugPath(path)
	if path.Course == "" || path.LearningArea == "" || path.Skill == "" || path.Level == "" || path.QuestionSet == "" {
		return nil, invalid("invalid_slug_path")
	}
	view, err := cache.GetOrLoad(ctx, u.deps.Cache, u.log, questionSetCacheKey(path), u.deps.CacheTTL,
		func(ctx context.Context) (QuestionSetView, error) {
			return u.loadQuestionSetView(ctx, path)
		})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (u Usecases) loadQuestionSetView(ctx context.Context, path repos.SlugPath) (QuestionSetView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	lineage, err := u.deps.QuestionSets.ResolveActive(dbc, path)
	if err != nil {
		return QuestionSetView{}, internal("resolve_question_set_failed", err)
	}
	if lineage == nil {
		return QuestionSetView{}, notFound("question_set_not_found")
	}
	set, err := u.deps.QuestionSets.GetActiveByID(dbc, lineage.QuestionSetID)
	if err != nil {
		return QuestionSetView{}, internal("load_question_set_failed", err)
	}
	if set == nil {
		return QuestionSetView{}, notFound("question_set_not_found")
	}
	questions, err := u.deps.Questions.ListActiveBySet(dbc, set.ID)
	if err != nil {
		return QuestionSetView{}, internal("load_questions_failed", err)
	}

	view := QuestionSetView{
		ID:               set.ID,
		Title:            set.Title,
		Slug:             set.Slug,
		Description:      set.Description,
		Number:           set.Number,
		EstimatedMinutes: set.EstimatedMinutes,
		DifficultyLevel:  lineage.DifficultyLevelName,
		Skill:            lineage.SkillName,
		Questions:        make([]QuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		qv := QuestionView{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			QuestionText: q.QuestionText,
			Points:       q.Points,
			OrderIndex:   q.OrderIndex,
			Options:      []OptionView{},
		}
		// Short-answer variants are the accepted answers themselves.
		if q.QuestionType != types.QuestionTypeShortAnswer {
			for _, o := range q.Options {
				qv.Options = append(qv.Options, OptionView{ID: o.ID, Text: o.OptionText, OrderIndex: o.OrderIndex})
			}
		}
		view.TotalPoints += q.Points
		view.TotalQuestions++
		view.Questions = append(view.Questions, qv)
	}
	if set.TotalPoints != view.TotalPoints || set.TotalQuestions != view.TotalQuestions {
		u.log.Warn("question set totals drifted, recomputing",
			"question_set_id", set.ID,
			"stored_points", set.TotalPoints, "active_points", view.TotalPoints,
			"stored_questions", set.TotalQuestions, "active_questions", view.TotalQuestions,
		)
		if err := u.deps.QuestionSets.RecomputeTotals(dbc, set.ID); err != nil {
			u.log.Error("recompute question set totals failed", "question_set_id", set.ID, "error", err)
		}
	}
	return view, nil
}

func normalizeSlugPath(p repos.SlugPath) repos.SlugPath {
	clean := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return repos.SlugPath{
		Course:       clean(p.Course),
		LearningArea: clean(p.LearningArea),
		Skill:        clean(p.Skill),
		Level:        clean(p.Level),
		QuestionSet:  clean(p.QuestionSet),
	}
}

func questionSetCacheKey(p repos.SlugPath) string {
	return "question-set:" + strings.Join([]string{p.Course, p.LearningArea, p.Skill, p.Level, p.QuestionSet}, "/")
}
