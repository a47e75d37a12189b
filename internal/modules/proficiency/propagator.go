package proficiency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/observability"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type PropagatorDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Policy Policy

	Hierarchy repos.HierarchyRepo
	Skills    repos.SkillProficiencyRepo
	Areas     repos.LearningAreaProficiencyRepo
	Courses   repos.CourseProficiencyRepo
}

// Propagator rolls a completed attempt up the tree: skill, then learning area, then course.
type Propagator struct {
	deps PropagatorDeps
	log  *logger.Logger
}

func NewPropagator(deps PropagatorDeps) *Propagator {
	return &Propagator{deps: deps, log: deps.Log.With("service", "ProficiencyPropagator")}
}

func (p *Propagator) Policy() Policy { return p.deps.Policy }

// PropagationResult reports what each level ended up as; a nil level was skipped.
type PropagationResult struct {
	Skill        *types.SkillProficiency        `json:"skill,omitempty"`
	LearningArea *types.LearningAreaProficiency `json:"learningArea,omitempty"`
	Course       *types.CourseProficiency       `json:"course,omitempty"`
}

// errSkillRowRaced means another writer created the skill row after our read.
var errSkillRowRaced = errors.New("skill proficiency row created concurrently")

const maxSkillUpdateAttempts = 3

// UpdateSkillProficiency folds newScore into the user's skill score. The read and
// write share one transaction so concurrent completions on the same skill serialize.
// A cold start that loses the insert race is retried against the winner's row.
func (p *Propagator) UpdateSkillProficiency(ctx context.Context, userID, skillID uuid.UUID, newScore float64, questionsAnswered int) (out *types.SkillProficiency, err error) {
	ctx, span := observability.StartSpan(ctx, "proficiency", "update_skill",
		observability.AttrUserID(userID), observability.AttrSkillID(skillID))
	defer observability.FinishSpan(span, &err)

	if userID == uuid.Nil || skillID == uuid.Nil {
		return nil, fmt.Errorf("user and skill ids required")
	}
	if questionsAnswered < 0 {
		questionsAnswered = 0
	}
	for attempt := 1; ; attempt++ {
		out, err = p.updateSkillOnce(ctx, userID, skillID, newScore, questionsAnswered)
		if !errors.Is(err, errSkillRowRaced) {
			break
		}
		if attempt >= maxSkillUpdateAttempts {
			return nil, fmt.Errorf("update skill proficiency: %w", err)
		}
		p.log.Debug("skill proficiency cold start raced, retrying", "user_id", userID, "skill_id", skillID, "attempt", attempt)
	}
	if err != nil {
		return nil, err
	}
	p.log.Debug("skill proficiency updated", "user_id", userID, "skill_id", skillID, "score", out.Score, "level", out.Level)
	return out, nil
}

func (p *Propagator) updateSkillOnce(ctx context.Context, userID, skillID uuid.UUID, newScore float64, questionsAnswered int) (out *types.SkillProficiency, err error) {
	err = p.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := p.deps.Skills.GetForUpdate(dbc, userID, skillID)
		if err != nil {
			return fmt.Errorf("load skill proficiency: %w", err)
		}
		row := &types.SkillProficiency{UserID: userID, SkillID: skillID}
		var prior *float64
		if existing != nil {
			row = existing
			prior = &existing.Score
		}
		row.Score = p.deps.Policy.Smooth(prior, newScore)
		row.Level = p.deps.Policy.LevelFor(row.Score)
		row.QuestionsAnswered += questionsAnswered
		row.QuestionSetsCompleted++
		row.LastUpdated = time.Now().UTC()

		if existing == nil {
			inserted, err := p.deps.Skills.InsertIfAbsent(dbc, row)
			if err != nil {
				return fmt.Errorf("insert skill proficiency: %w", err)
			}
			if !inserted {
				return errSkillRowRaced
			}
		} else if err := p.deps.Skills.Upsert(dbc, row); err != nil {
			return fmt.Errorf("upsert skill proficiency: %w", err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateLearningAreaProficiency sets the area score to the flat mean of the user's
// skill scores under it. Returns nil when the user has no skill rows there.
func (p *Propagator) UpdateLearningAreaProficiency(ctx context.Context, userID, learningAreaID uuid.UUID) (*types.LearningAreaProficiency, error) {
	dbc := dbctx.Context{Ctx: ctx}
	skillIDs, err := p.deps.Hierarchy.ListSkillIDsByLearningArea(dbc, learningAreaID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	rows, err := p.deps.Skills.ListByUserAndSkillIDs(dbc, userID, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("list skill proficiency: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	scores := make([]float64, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, r.Score)
	}
	avg := mean(scores)
	out := &types.LearningAreaProficiency{
		UserID:          userID,
		LearningAreaID:  learningAreaID,
		Score:           avg,
		Level:           p.deps.Policy.LevelFor(avg),
		SkillsCompleted: len(rows),
		TotalSkills:     len(skillIDs),
		LastUpdated:     time.Now().UTC(),
	}
	if err := p.deps.Areas.Upsert(dbc, out); err != nil {
		return nil, fmt.Errorf("upsert learning area proficiency: %w", err)
	}
	return out, nil
}

// UpdateCourseProficiency sets the course score to the flat mean of the user's
// learning-area scores. Returns nil when there are none.
func (p *Propagator) UpdateCourseProficiency(ctx context.Context, userID, courseID uuid.UUID) (*types.CourseProficiency, error) {
	dbc := dbctx.Context{Ctx: ctx}
	areaIDs, err := p.deps.Hierarchy.ListLearningAreaIDsByCourse(dbc, courseID)
	if err != nil {
		return nil, fmt.Errorf("list learning areas: %w", err)
	}
	rows, err := p.deps.Areas.ListByUserAndAreaIDs(dbc, userID, areaIDs)
	if err != nil {
		return nil, fmt.Errorf("list learning area proficiency: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	scores := make([]float64, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, r.Score)
	}
	avg := mean(scores)
	out := &types.CourseProficiency{
		UserID:                 userID,
		CourseID:               courseID,
		Score:                  avg,
		Level:                  p.deps.Policy.LevelFor(avg),
		LearningAreasCompleted: len(rows),
		TotalLearningAreas:     len(areaIDs),
		LastUpdated:            time.Now().UTC(),
	}
	if err := p.deps.Courses.Upsert(dbc, out); err != nil {
		return nil, fmt.Errorf("upsert course proficiency: %w", err)
	}
	return out, nil
}

// Propagate runs skill, learning area and course updates strictly in that order.
// A failure stops the chain; levels already written stay written.
func (p *Propagator) Propagate(ctx context.Context, userID, skillID uuid.UUID, score float64, questionsAnswered int) (res PropagationResult, err error) {
	ctx, span := observability.StartSpan(ctx, "proficiency", "propagate",
		observability.AttrUserID(userID), observability.AttrSkillID(skillID))
	defer observability.FinishSpan(span, &err)

	res.Skill, err = p.UpdateSkillProficiency(ctx, userID, skillID, score, questionsAnswered)
	if err != nil {
		return res, err
	}
	skill, err := p.deps.Hierarchy.GetSkill(dbctx.Context{Ctx: ctx}, skillID)
	if err != nil {
		return res, fmt.Errorf("load skill: %w", err)
	}
	if skill == nil {
		return res, nil
	}
	res.LearningArea, err = p.UpdateLearningAreaProficiency(ctx, userID, skill.LearningAreaID)
	if err != nil {
		return res, err
	}
	area, err := p.deps.Hierarchy.GetLearningArea(dbctx.Context{Ctx: ctx}, skill.LearningAreaID)
	if err != nil {
		return res, fmt.Errorf("load learning area: %w", err)
	}
	if area == nil {
		return res, nil
	}
	res.Course, err = p.UpdateCourseProficiency(ctx, userID, area.CourseID)
	return res, err
}

// Snapshot is every proficiency row held by one user.
type Snapshot struct {
	Skills        []*types.SkillProficiency        `json:"skills"`
	LearningAreas []*types.LearningAreaProficiency `json:"learningAreas"`
	Courses       []*types.CourseProficiency       `json:"courses"`
}

func (p *Propagator) ListProficiency(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	dbc := dbctx.Context{Ctx: ctx}
	skills, err := p.deps.Skills.ListByUser(dbc, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list skill proficiency: %w", err)
	}
	areas, err := p.deps.Areas.ListByUser(dbc, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list learning area proficiency: %w", err)
	}
	courses, err := p.deps.Courses.ListByUser(dbc, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list course proficiency: %w", err)
	}
	return Snapshot{Skills: skills, LearningAreas: areas, Courses: courses}, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
