package proficiency

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos"
	"github.com/yungbote/practice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

func newTestPropagator(t *testing.T) (*Propagator, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewPropagator(PropagatorDeps{
		DB:        db,
		Log:       log,
		Policy:    DefaultPolicy(),
		Hierarchy: repos.NewHierarchyRepo(db, log),
		Skills:    repos.NewSkillProficiencyRepo(db, log),
		Areas:     repos.NewLearningAreaProficiencyRepo(db, log),
		Courses:   repos.NewCourseProficiencyRepo(db, log),
	}), db
}

func TestUpdateSkillProficiencyColdStartAndSmoothing(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "sk")
	userID := uuid.New()

	first, err := p.UpdateSkillProficiency(ctx, userID, tree.Skill.ID, 80, 4)
	require.NoError(t, err)
	assert.Equal(t, 80.0, first.Score)
	assert.Equal(t, types.LevelAdvanced, first.Level)
	assert.Equal(t, 4, first.QuestionsAnswered)
	assert.Equal(t, 1, first.QuestionSetsCompleted)

	userB := uuid.New()
	_, err = p.UpdateSkillProficiency(ctx, userB, tree.Skill.ID, 60, 2)
	require.NoError(t, err)
	second, err := p.UpdateSkillProficiency(ctx, userB, tree.Skill.ID, 90, 3)
	require.NoError(t, err)
	assert.InDelta(t, 69.0, second.Score, 1e-9)
	assert.Equal(t, types.LevelIntermediate, second.Level)
	assert.Equal(t, 5, second.QuestionsAnswered)
	assert.Equal(t, 2, second.QuestionSetsCompleted)

	stored, err := repos.NewSkillProficiencyRepo(db, testutil.Logger(t)).Get(dbctx.Context{Ctx: ctx}, userB, tree.Skill.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 69.0, stored.Score, 1e-9)
}

// staleSkills hides existing rows from the first GetForUpdate, as if another
// completion inserted the row right after this transaction looked.
type staleSkills struct {
	repos.SkillProficiencyRepo
	hidden int
}

func (s *staleSkills) GetForUpdate(dbc dbctx.Context, userID, skillID uuid.UUID) (*types.SkillProficiency, error) {
	if s.hidden > 0 {
		s.hidden--
		return nil, nil
	}
	return s.SkillProficiencyRepo.GetForUpdate(dbc, userID, skillID)
}

func TestUpdateSkillProficiencyColdStartRaceKeepsWinner(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "race")
	userID := uuid.New()

	_, err := p.UpdateSkillProficiency(ctx, userID, tree.Skill.ID, 80, 4)
	require.NoError(t, err)

	stale := &staleSkills{SkillProficiencyRepo: p.deps.Skills, hidden: 1}
	deps := p.deps
	deps.Skills = stale
	racer := NewPropagator(deps)

	row, err := racer.UpdateSkillProficiency(ctx, userID, tree.Skill.ID, 60, 2)
	require.NoError(t, err)
	assert.Zero(t, stale.hidden)
	// 80*0.7 + 60*0.3
	assert.InDelta(t, 74.0, row.Score, 1e-9)
	assert.Equal(t, 6, row.QuestionsAnswered)
	assert.Equal(t, 2, row.QuestionSetsCompleted)

	stored, err := p.deps.Skills.Get(dbctx.Context{Ctx: ctx}, userID, tree.Skill.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 74.0, stored.Score, 1e-9)
	assert.Equal(t, 2, stored.QuestionSetsCompleted)
}

func TestUpdateSkillProficiencyGivesUpAfterRepeatedRaces(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "racy")
	userID := uuid.New()

	_, err := p.UpdateSkillProficiency(ctx, userID, tree.Skill.ID, 80, 4)
	require.NoError(t, err)

	deps := p.deps
	deps.Skills = &staleSkills{SkillProficiencyRepo: p.deps.Skills, hidden: maxSkillUpdateAttempts}
	_, err = NewPropagator(deps).UpdateSkillProficiency(ctx, userID, tree.Skill.ID, 60, 2)
	require.ErrorIs(t, err, errSkillRowRaced)

	stored, err := p.deps.Skills.Get(dbctx.Context{Ctx: ctx}, userID, tree.Skill.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.Score)
	assert.Equal(t, 1, stored.QuestionSetsCompleted)
}

func TestPropagateRollsUpFlatAverages(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "prop")
	skill2 := testutil.SeedSkill(t, ctx, db, tree.Area.ID, "prop-skill-2")
	area2 := testutil.SeedLearningArea(t, ctx, db, tree.Course.ID, "prop-area-2")
	skill3 := testutil.SeedSkill(t, ctx, db, area2.ID, "prop-skill-3")
	userID := uuid.New()

	res, err := p.Propagate(ctx, userID, tree.Skill.ID, 80, 2)
	require.NoError(t, err)
	require.NotNil(t, res.Skill)
	require.NotNil(t, res.LearningArea)
	require.NotNil(t, res.Course)
	assert.Equal(t, 80.0, res.LearningArea.Score)
	assert.Equal(t, 1, res.LearningArea.SkillsCompleted)
	assert.Equal(t, 2, res.LearningArea.TotalSkills)
	assert.Equal(t, 80.0, res.Course.Score)
	assert.Equal(t, 1, res.Course.LearningAreasCompleted)
	assert.Equal(t, 2, res.Course.TotalLearningAreas)

	res, err = p.Propagate(ctx, userID, skill2.ID, 40, 2)
	require.NoError(t, err)
	assert.Equal(t, 60.0, res.LearningArea.Score)
	assert.Equal(t, types.LevelIntermediate, res.LearningArea.Level)
	assert.Equal(t, 60.0, res.Course.Score)

	// Flat average across areas ignores how many skills each area holds.
	res, err = p.Propagate(ctx, userID, skill3.ID, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.LearningArea.Score)
	assert.Equal(t, 80.0, res.Course.Score)
	assert.Equal(t, types.LevelAdvanced, res.Course.Level)

	snap, err := p.ListProficiency(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, snap.Skills, 3)
	assert.Len(t, snap.LearningAreas, 2)
	assert.Len(t, snap.Courses, 1)
}

func TestAggregatesKeepDeactivatedChildren(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "retired")
	skill2 := testutil.SeedSkill(t, ctx, db, tree.Area.ID, "retired-skill-2")
	userID := uuid.New()

	_, err := p.Propagate(ctx, userID, tree.Skill.ID, 90, 2)
	require.NoError(t, err)
	testutil.Deactivate(t, ctx, db, &types.Skill{}, tree.Skill.ID)

	res, err := p.Propagate(ctx, userID, skill2.ID, 50, 2)
	require.NoError(t, err)
	assert.Equal(t, 70.0, res.LearningArea.Score)
	assert.Equal(t, 2, res.LearningArea.SkillsCompleted)
	assert.Equal(t, 2, res.LearningArea.TotalSkills)
	assert.Equal(t, 70.0, res.Course.Score)
}

func TestUpdateLearningAreaSkipsWithoutData(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "empty")

	la, err := p.UpdateLearningAreaProficiency(ctx, uuid.New(), tree.Area.ID)
	require.NoError(t, err)
	assert.Nil(t, la)

	cp, err := p.UpdateCourseProficiency(ctx, uuid.New(), tree.Course.ID)
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestReconcileAllRepairsAggregates(t *testing.T) {
	p, db := newTestPropagator(t)
	ctx := context.Background()
	tree := testutil.SeedTree(t, ctx, db, "rec")
	log := testutil.Logger(t)
	skills := repos.NewSkillProficiencyRepo(db, log)

	// Skill rows written without propagation, as if the roll-up had failed.
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, u := range users {
		require.NoError(t, skills.Upsert(dbctx.Context{Ctx: ctx}, &types.SkillProficiency{
			UserID:  u,
			SkillID: tree.Skill.ID,
			Score:   float64(50 + 10*i),
			Level:   types.LevelIntermediate,
		}))
	}

	stats, err := p.ReconcileAll(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 3, stats.LearningAreas)
	assert.Equal(t, 3, stats.Courses)
	assert.Zero(t, stats.Failed)

	snap, err := p.ListProficiency(ctx, users[2])
	require.NoError(t, err)
	require.Len(t, snap.Courses, 1)
	assert.Equal(t, 70.0, snap.Courses[0].Score)
}
