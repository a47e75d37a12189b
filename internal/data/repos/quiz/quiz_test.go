package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/practice-backend/internal/data/db"
	"github.com/yungbote/practice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/practice-backend/internal/domain"
	"github.com/yungbote/practice-backend/internal/platform/dbctx"
)

func TestQuizAttemptRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewQuizAttemptRepo(gdb, testutil.Logger(t))

	tree := testutil.SeedTree(t, ctx, tx, "att")
	userID := uuid.New()

	a := &types.QuizAttempt{UserID: userID, QuestionSetID: tree.Set.ID}
	if err := repo.Create(dbc, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == uuid.Nil || a.StartedAt.IsZero() {
		t.Fatalf("Create should assign id and started_at: %+v", a)
	}

	dup := &types.QuizAttempt{UserID: userID, QuestionSetID: tree.Set.ID}
	sp := tx.SavePoint("dup")
	if sp.Error != nil {
		t.Fatalf("SavePoint: %v", sp.Error)
	}
	err := repo.Create(dbc, dup)
	if !db.IsUniqueViolation(err) {
		t.Fatalf("second in-progress Create: expected unique violation, got %v", err)
	}
	if err := tx.RollbackTo("dup").Error; err != nil {
		t.Fatalf("RollbackTo: %v", err)
	}

	got, err := repo.GetInProgress(dbc, userID, tree.Set.ID)
	if err != nil || got == nil || got.ID != a.ID {
		t.Fatalf("GetInProgress: err=%v got=%v", err, got)
	}
	if got, err := repo.GetByIDForUpdate(dbc, a.ID); err != nil || got == nil {
		t.Fatalf("GetByIDForUpdate: err=%v got=%v", err, got)
	}

	done := time.Now().UTC()
	ok, err := repo.CompleteIfOpen(dbc, a.ID, Completion{
		EarnedPoints: 5,
		TotalPoints:  15,
		Percentage:   100.0 / 3.0,
		TimeSpent:    42,
		CompletedAt:  done,
		Summary:      datatypes.JSON([]byte(`{"passed":false}`)),
	})
	if err != nil || !ok {
		t.Fatalf("CompleteIfOpen: ok=%v err=%v", ok, err)
	}
	ok, err = repo.CompleteIfOpen(dbc, a.ID, Completion{EarnedPoints: 15, TotalPoints: 15, CompletedAt: done})
	if err != nil || ok {
		t.Fatalf("second CompleteIfOpen must not apply: ok=%v err=%v", ok, err)
	}

	stored, err := repo.GetByID(dbc, a.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetByID: err=%v", err)
	}
	if !stored.IsCompleted || stored.EarnedPoints != 5 || stored.TotalPoints != 15 || stored.TimeSpent != 42 || stored.CompletedAt == nil {
		t.Fatalf("stored completion: %+v", stored)
	}

	// once completed, a new attempt can start
	next := &types.QuizAttempt{UserID: userID, QuestionSetID: tree.Set.ID}
	if err := repo.Create(dbc, next); err != nil {
		t.Fatalf("Create after completion: %v", err)
	}
	if got, err := repo.GetInProgress(dbc, userID, tree.Set.ID); err != nil || got == nil || got.ID != next.ID {
		t.Fatalf("GetInProgress after completion: err=%v got=%v", err, got)
	}

	completed, err := repo.ListCompleted(dbc, userID, tree.Set.ID)
	if err != nil || len(completed) != 1 || completed[0].ID != a.ID {
		t.Fatalf("ListCompleted: err=%v len=%d", err, len(completed))
	}
	if got, err := repo.GetByID(dbc, uuid.New()); err != nil || got != nil {
		t.Fatalf("GetByID missing: err=%v got=%v", err, got)
	}
}

func TestQuestionAnswerRepoUpsert(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	attempts := NewQuizAttemptRepo(gdb, testutil.Logger(t))
	answers := NewQuestionAnswerRepo(gdb, testutil.Logger(t))

	tree := testutil.SeedTree(t, ctx, tx, "ans")
	q := testutil.SeedChoiceQuestion(t, ctx, tx, tree.Set.ID, 5, []string{"a", "b"}, 0)
	userID := uuid.New()
	a := &types.QuizAttempt{UserID: userID, QuestionSetID: tree.Set.ID}
	if err := attempts.Create(dbc, a); err != nil {
		t.Fatalf("Create attempt: %v", err)
	}

	first := &types.QuestionAnswer{QuizAttemptID: a.ID, QuestionID: q.ID, UserID: userID, UserAnswer: "wrong", TimeSpent: 3}
	if err := answers.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	second := &types.QuestionAnswer{
		QuizAttemptID: a.ID,
		QuestionID:    q.ID,
		UserID:        userID,
		UserAnswer:    q.Options[0].ID.String(),
		IsCorrect:     true,
		PointsEarned:  5,
		TimeSpent:     9,
	}
	if err := answers.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	rows, err := answers.ListByAttempt(dbc, a.ID)
	if err != nil {
		t.Fatalf("ListByAttempt: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row per (attempt, question), got %d", len(rows))
	}
	if !rows[0].IsCorrect || rows[0].PointsEarned != 5 || rows[0].TimeSpent != 9 || rows[0].UserAnswer != second.UserAnswer {
		t.Fatalf("last write should win: %+v", rows[0])
	}
}
