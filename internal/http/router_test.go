package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/practice-backend/internal/data/repos"
	"github.com/yungbote/practice-backend/internal/data/repos/testutil"
	types "github.com/yungbote/practice-backend/internal/domain"
	httpH "github.com/yungbote/practice-backend/internal/http/handlers"
	httpMW "github.com/yungbote/practice-backend/internal/http/middleware"
	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	quizmod "github.com/yungbote/practice-backend/internal/modules/quiz"
	"github.com/yungbote/practice-backend/internal/services"
)

type testServer struct {
	engine   *gin.Engine
	db       *gorm.DB
	tree     *testutil.Tree
	identity services.IdentityService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	identity, err := services.NewIdentityService(log, "test-secret")
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	prop := proficiency.NewPropagator(proficiency.PropagatorDeps{
		DB:        db,
		Log:       log,
		Policy:    proficiency.DefaultPolicy(),
		Hierarchy: repos.NewHierarchyRepo(db, log),
		Skills:    repos.NewSkillProficiencyRepo(db, log),
		Areas:     repos.NewLearningAreaProficiencyRepo(db, log),
		Courses:   repos.NewCourseProficiencyRepo(db, log),
	})
	quiz := quizmod.New(quizmod.UsecasesDeps{
		DB:           db,
		Log:          log,
		QuestionSets: repos.NewQuestionSetRepo(db, log),
		Questions:    repos.NewQuestionRepo(db, log),
		Attempts:     repos.NewQuizAttemptRepo(db, log),
		Answers:      repos.NewQuestionAnswerRepo(db, log),
		Proficiency:  prop,
	})
	engine := NewRouter(RouterConfig{
		Log:                log,
		AuthMiddleware:     httpMW.NewAuthMiddleware(log, identity),
		HealthHandler:      httpH.NewHealthHandler(db),
		QuestionSetHandler: httpH.NewQuestionSetHandler(log, quiz),
		QuizHandler:        httpH.NewQuizHandler(log, quiz),
		ProficiencyHandler: httpH.NewProficiencyHandler(log, prop),
	})
	return &testServer{
		engine:   engine,
		db:       db,
		tree:     testutil.SeedTree(t, context.Background(), db, "http"),
		identity: identity,
	}
}

func (s *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := s.identity.IssueToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	out := map[string]any{}
	if ct := rec.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthcheckIsPublic(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
	rec, _ = s.do(t, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	s := newTestServer(t)
	path := "/api/question-sets/" + s.tree.Set.ID.String() + "/attempts"

	rec, body := s.do(t, http.MethodPost, path, "", nil)
	if rec.Code != http.StatusUnauthorized || errorCode(body) != "unauthorized" {
		t.Fatalf("no token: %d %v", rec.Code, body)
	}
	rec, _ = s.do(t, http.MethodPost, path, "not.a.jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rec.Code)
	}
}

func TestQuizFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	q1 := testutil.SeedChoiceQuestion(t, ctx, s.db, s.tree.Set.ID, 5, []string{"a", "b"}, 0)
	q2 := testutil.SeedChoiceQuestion(t, ctx, s.db, s.tree.Set.ID, 10, []string{"a", "b"}, 0)
	userID := uuid.New()
	tok := s.token(t, userID)

	setPath := "/api/courses/http-course/learning-areas/http-area/skills/http-skill/difficulty-levels/http-level/question-sets/http-set"
	rec, body := s.do(t, http.MethodGet, setPath, tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get set: %d %v", rec.Code, body)
	}
	if got := body["totalPoints"]; got != float64(15) {
		t.Fatalf("totalPoints = %v", got)
	}

	rec, body = s.do(t, http.MethodPost, "/api/question-sets/"+s.tree.Set.ID.String()+"/attempts", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start attempt: %d %v", rec.Code, body)
	}
	attemptID, _ := body["attemptId"].(string)
	if attemptID == "" || body["isCompleted"] != false {
		t.Fatalf("unexpected start body: %v", body)
	}

	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", tok, map[string]any{
		"questionId": q1.ID.String(),
		"userAnswer": q1.Options[0].ID.String(),
		"timeSpent":  8,
	})
	if rec.Code != http.StatusOK || body["isCorrect"] != true || body["pointsEarned"] != float64(5) {
		t.Fatalf("answer q1: %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", tok, map[string]any{
		"questionId": q2.ID.String(),
		"userAnswer": q2.Options[1].ID.String(),
		"timeSpent":  4,
	})
	if rec.Code != http.StatusOK || body["isCorrect"] != false {
		t.Fatalf("answer q2: %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", tok, map[string]any{
		"questionId": q2.ID.String(),
		"userAnswer": "   ",
	})
	if rec.Code != http.StatusBadRequest || errorCode(body) != "missing_answer" {
		t.Fatalf("blank answer: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodGet, "/api/attempts/"+attemptID, tok, nil)
	if rec.Code != http.StatusConflict || errorCode(body) != "attempt_not_completed" {
		t.Fatalf("detail before finalize: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/finalize", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("finalize: %d %v", rec.Code, body)
	}
	if body["earnedPoints"] != float64(5) || body["totalPoints"] != float64(15) ||
		body["percentage"] != 33.33 || body["passed"] != false || body["alreadyFinalized"] != false {
		t.Fatalf("unexpected finalize body: %v", body)
	}

	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/finalize", tok, nil)
	if rec.Code != http.StatusOK || body["alreadyFinalized"] != true || body["earnedPoints"] != float64(5) {
		t.Fatalf("second finalize: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+attemptID+"/answers", tok, map[string]any{
		"questionId": q2.ID.String(),
		"userAnswer": q2.Options[0].ID.String(),
	})
	if rec.Code != http.StatusConflict || errorCode(body) != "attempt_completed" {
		t.Fatalf("answer after finalize: %d %v", rec.Code, body)
	}

	rec, body = s.do(t, http.MethodGet, "/api/attempts/"+attemptID, tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: %d %v", rec.Code, body)
	}
	answers, _ := body["answers"].([]any)
	if len(answers) != 2 {
		t.Fatalf("detail answers = %d", len(answers))
	}

	rec, _ = s.do(t, http.MethodGet, "/api/attempts/"+attemptID, s.token(t, uuid.New()), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("detail as another user: %d", rec.Code)
	}

	rec, body = s.do(t, http.MethodGet, "/api/question-sets/"+s.tree.Set.ID.String()+"/attempts", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history: %d %v", rec.Code, body)
	}
	if items, _ := body["attempts"].([]any); len(items) != 1 {
		t.Fatalf("history items = %v", body["attempts"])
	}

	rec, body = s.do(t, http.MethodGet, "/api/proficiency", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("proficiency: %d %v", rec.Code, body)
	}
	skills, _ := body["skills"].([]any)
	if len(skills) != 1 {
		t.Fatalf("skills = %v", body["skills"])
	}
	if lvl := skills[0].(map[string]any)["level"]; lvl != string(types.LevelBeginning) {
		t.Fatalf("skill level = %v", lvl)
	}
}

func TestBadIDsAreRejected(t *testing.T) {
	s := newTestServer(t)
	tok := s.token(t, uuid.New())

	rec, body := s.do(t, http.MethodPost, "/api/question-sets/nope/attempts", tok, nil)
	if rec.Code != http.StatusBadRequest || errorCode(body) != "invalid_question_set_id" {
		t.Fatalf("bad set id: %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/api/question-sets/"+uuid.NewString()+"/attempts", tok, nil)
	if rec.Code != http.StatusNotFound || errorCode(body) != "question_set_not_found" {
		t.Fatalf("unknown set: %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+uuid.NewString()+"/finalize", tok, nil)
	if rec.Code != http.StatusNotFound || errorCode(body) != "attempt_not_found" {
		t.Fatalf("unknown attempt: %d %v", rec.Code, body)
	}
	rec, body = s.do(t, http.MethodPost, "/api/attempts/"+uuid.NewString()+"/answers", tok, map[string]any{
		"questionId": "xyz",
		"userAnswer": "a",
	})
	if rec.Code != http.StatusBadRequest || errorCode(body) != "invalid_question_id" {
		t.Fatalf("bad question id: %d %v", rec.Code, body)
	}
}
