package proficiency

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

// ReconcileStats summarizes one reconcile pass.
type ReconcileStats struct {
	Users         int
	LearningAreas int
	Courses       int
	Failed        int
}

// ReconcileUser recomputes every learning-area and course aggregate reachable from
// the user's skill rows. It repairs aggregates left stale by a failed propagation.
func (p *Propagator) ReconcileUser(ctx context.Context, userID uuid.UUID) (areas int, courses int, err error) {
	dbc := dbctx.Context{Ctx: ctx}
	skills, err := p.deps.Skills.ListByUser(dbc, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("list skills: %w", err)
	}
	skillIDs := make([]uuid.UUID, 0, len(skills))
	for _, s := range skills {
		skillIDs = append(skillIDs, s.SkillID)
	}
	areaBySkill, err := p.deps.Hierarchy.LearningAreaIDsForSkills(dbc, skillIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("map skills to areas: %w", err)
	}

	seenArea := map[uuid.UUID]bool{}
	seenCourse := map[uuid.UUID]bool{}
	courseIDs := []uuid.UUID{}
	for _, skillID := range skillIDs {
		areaID, ok := areaBySkill[skillID]
		if !ok || seenArea[areaID] {
			continue
		}
		seenArea[areaID] = true
		row, err := p.UpdateLearningAreaProficiency(ctx, userID, areaID)
		if err != nil {
			return areas, courses, err
		}
		if row != nil {
			areas++
		}
		area, err := p.deps.Hierarchy.GetLearningArea(dbc, areaID)
		if err != nil {
			return areas, courses, fmt.Errorf("load learning area: %w", err)
		}
		if area != nil && !seenCourse[area.CourseID] {
			seenCourse[area.CourseID] = true
			courseIDs = append(courseIDs, area.CourseID)
		}
	}
	for _, courseID := range courseIDs {
		row, err := p.UpdateCourseProficiency(ctx, userID, courseID)
		if err != nil {
			return areas, courses, err
		}
		if row != nil {
			courses++
		}
	}
	return areas, courses, nil
}

// ReconcileAll runs ReconcileUser for every user with skill rows, at most
// concurrency at a time. Per-user failures are logged and counted, not returned.
func (p *Propagator) ReconcileAll(ctx context.Context, concurrency int) (ReconcileStats, error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	userIDs, err := p.deps.Skills.ListUserIDs(dbctx.Context{Ctx: ctx})
	if err != nil {
		return ReconcileStats{}, fmt.Errorf("list users: %w", err)
	}

	var areas, courses, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, c, err := p.ReconcileUser(gctx, userID)
			areas.Add(int64(a))
			courses.Add(int64(c))
			if err != nil {
				failed.Add(1)
				p.log.Warn("reconcile user failed", "user_id", userID, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReconcileStats{}, err
	}
	stats := ReconcileStats{
		Users:         len(userIDs),
		LearningAreas: int(areas.Load()),
		Courses:       int(courses.Load()),
		Failed:        int(failed.Load()),
	}
	p.log.Info("proficiency reconcile finished",
		"users", stats.Users, "learning_areas", stats.LearningAreas, "courses", stats.Courses, "failed", stats.Failed)
	return stats, nil
}
