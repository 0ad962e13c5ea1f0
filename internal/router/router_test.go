package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/config"
	"github.com/lshigami/surveyhub/database"
	"github.com/lshigami/surveyhub/internal/auth"
	adminctrl "github.com/lshigami/surveyhub/internal/controller/admin"
	userctrl "github.com/lshigami/surveyhub/internal/controller/user"
	"github.com/lshigami/surveyhub/internal/event"
	"github.com/lshigami/surveyhub/internal/model"
	"github.com/lshigami/surveyhub/internal/repository"
	"github.com/lshigami/surveyhub/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Database: config.Database{Driver: "sqlite", Path: ":memory:"},
		Auth:     config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	surveyRepo := repository.NewSurveyRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	choiceRepo := repository.NewChoiceRepository(db)
	responseRepo := repository.NewResponseRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	publisher := event.Disabled()
	tokens := auth.NewTokenManager(cfg)

	authService := service.NewAuthService(repository.NewUserRepository(db), tokens, auth.NewDBRevocationStore(db))
	surveyService := service.NewSurveyService(surveyRepo, questionRepo, choiceRepo, publisher, db)
	statsService := service.NewStatisticsService(surveyRepo, repository.NewStatisticsRepository(db))
	responseService := service.NewResponseService(surveyRepo, responseRepo, answerRepo, questionRepo, choiceRepo, publisher, db)

	engine := NewEngine(gin.TestMode)
	RegisterRoutes(engine, authService, Handlers{
		Surveys:   userctrl.NewSurveyController(surveyService, statsService),
		Responses: userctrl.NewResponseController(responseService),
		Answers:   userctrl.NewAnswerController(service.NewAnswerService(answerRepo)),
		Auth:      userctrl.NewAuthController(authService),
		Questions: adminctrl.NewQuestionController(service.NewQuestionService(surveyRepo, questionRepo, db)),
		Choices:   adminctrl.NewChoiceController(service.NewChoiceService(questionRepo, choiceRepo, db)),
	})

	return &testServer{t: t, engine: engine, db: db, tokens: tokens}
}

// login creates a user directly and returns a bearer token for it.
func (s *testServer) login(username string, admin bool) string {
	s.t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := model.User{Username: username, PasswordHash: string(hash), IsAdmin: admin}
	if err := s.db.Create(&u).Error; err != nil {
		s.t.Fatalf("create user: %v", err)
	}
	token, _, err := s.tokens.Issue(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		s.t.Fatalf("issue token: %v", err)
	}
	return token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}

type surveyBody struct {
	URL       string `json:"url"`
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
	Questions []struct {
		ID      uint `json:"id"`
		Choices []struct {
			ID uint `json:"id"`
		} `json:"choices"`
	} `json:"questions"`
}

func (s *testServer) createPoll(token string) surveyBody {
	s.t.Helper()
	w := s.do(http.MethodPost, "/surveys/create", token, map[string]any{
		"title":      "Color Poll",
		"created_by": 999,
		"questions": []map[string]any{
			{"text": "Favourite color?", "question_type": "single", "choices": []map[string]any{
				{"text": "Red"}, {"text": "Blue"},
			}},
			{"text": "Why?", "question_type": "text"},
		},
	})
	expectStatus(s.t, w, http.StatusCreated)
	return decode[surveyBody](s.t, w)
}

func TestAnonymousAccess(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)
	poll := s.createPoll(owner)

	expectStatus(t, s.do(http.MethodGet, "/surveys", "", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, fmt.Sprintf("/surveys/%d", poll.ID), "", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, fmt.Sprintf("/surveys/%d/statistics", poll.ID), "", nil), http.StatusOK)

	denied := []struct {
		method, path string
	}{
		{http.MethodPost, "/surveys"},
		{http.MethodPost, "/surveys/create"},
		{http.MethodPut, fmt.Sprintf("/surveys/%d", poll.ID)},
		{http.MethodPatch, fmt.Sprintf("/surveys/%d", poll.ID)},
		{http.MethodDelete, fmt.Sprintf("/surveys/%d", poll.ID)},
		{http.MethodGet, "/responses"},
		{http.MethodGet, "/answers"},
		{http.MethodGet, fmt.Sprintf("/surveys/%d/questions", poll.ID)},
	}
	for _, d := range denied {
		w := s.do(d.method, d.path, "", map[string]any{"title": "x"})
		expectStatus(t, w, http.StatusForbidden)
		if body := decode[map[string]string](t, w); body["detail"] == "" {
			t.Errorf("%s %s: missing detail in %s", d.method, d.path, w.Body.String())
		}
	}

	var surveys int64
	s.db.Model(&model.Survey{}).Count(&surveys)
	if surveys != 1 {
		t.Errorf("denied requests must not write; surveys = %d", surveys)
	}
}

func TestSurveyTreeCreateAndOwnership(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)
	other := s.login("other", false)

	poll := s.createPoll(owner)
	if poll.CreatedBy != "owner" {
		t.Errorf("created_by = %q, want owner", poll.CreatedBy)
	}
	if want := fmt.Sprintf("http://example.com/api/v1/surveys/%d/", poll.ID); poll.URL != want {
		t.Errorf("url = %q, want %q", poll.URL, want)
	}
	if len(poll.Questions) != 2 || len(poll.Questions[0].Choices) != 2 {
		t.Fatalf("unexpected tree: %+v", poll)
	}

	path := fmt.Sprintf("/surveys/%d", poll.ID)
	expectStatus(t, s.do(http.MethodPatch, path, other, map[string]any{"title": "Mine now"}), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodDelete, path, other, nil), http.StatusForbidden)

	w := s.do(http.MethodPatch, path, owner, map[string]any{"title": "Colors"})
	expectStatus(t, w, http.StatusOK)
	if got := decode[surveyBody](t, w).Title; got != "Colors" {
		t.Errorf("title = %q, want Colors", got)
	}

	expectStatus(t, s.do(http.MethodDelete, path, owner, nil), http.StatusNoContent)
	w = s.do(http.MethodGet, path, "", nil)
	expectStatus(t, w, http.StatusNotFound)
	if body := decode[map[string]string](t, w); body["detail"] != "Not found." {
		t.Errorf("detail = %q", body["detail"])
	}
}

func TestSurveyValidationErrors(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)

	w := s.do(http.MethodPost, "/surveys/create", owner, map[string]any{
		"questions": []map[string]any{{"question_type": "essay"}},
	})
	expectStatus(t, w, http.StatusBadRequest)
	fields := decode[map[string][]string](t, w)
	for _, key := range []string{"title", "questions[0].text", "questions[0].question_type"} {
		if len(fields[key]) == 0 {
			t.Errorf("missing error for %s in %v", key, fields)
		}
	}

	var surveys int64
	s.db.Model(&model.Survey{}).Count(&surveys)
	if surveys != 0 {
		t.Errorf("surveys = %d, want 0", surveys)
	}
}

func TestQuestionAndChoiceAdminOnly(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)
	admin := s.login("admin", true)
	poll := s.createPoll(owner)

	questions := fmt.Sprintf("/surveys/%d/questions", poll.ID)
	expectStatus(t, s.do(http.MethodGet, questions, owner, nil), http.StatusForbidden)
	expectStatus(t, s.do(http.MethodGet, questions, admin, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/surveys/9999/questions", admin, nil), http.StatusNotFound)

	w := s.do(http.MethodPost, questions, admin, map[string]any{"text": "Shade?", "question_type": "multiple", "order": 3})
	expectStatus(t, w, http.StatusCreated)
	created := decode[struct {
		ID uint `json:"id"`
	}](t, w)

	choices := fmt.Sprintf("/questions/%d/choices", created.ID)
	expectStatus(t, s.do(http.MethodPost, choices, owner, map[string]any{"text": "Dark"}), http.StatusForbidden)
	w = s.do(http.MethodPost, choices, admin, map[string]any{"text": "Dark", "value": "d"})
	expectStatus(t, w, http.StatusCreated)
	choice := decode[struct {
		ID uint `json:"id"`
	}](t, w)

	choicePath := fmt.Sprintf("%s/%d", choices, choice.ID)
	expectStatus(t, s.do(http.MethodPatch, choicePath, admin, map[string]any{"text": "Light"}), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, choicePath, admin, nil), http.StatusNoContent)
	expectStatus(t, s.do(http.MethodGet, choicePath, admin, nil), http.StatusNotFound)

	textQuestion := poll.Questions[1].ID
	w = s.do(http.MethodPost, fmt.Sprintf("/questions/%d/choices", textQuestion), admin, map[string]any{"text": "nope"})
	expectStatus(t, w, http.StatusBadRequest)

	questionPath := fmt.Sprintf("%s/%d", questions, created.ID)
	expectStatus(t, s.do(http.MethodDelete, questionPath, admin, nil), http.StatusNoContent)
	// A question is only reachable through its own survey.
	expectStatus(t, s.do(http.MethodGet, fmt.Sprintf("/surveys/9999/questions/%d", poll.Questions[0].ID), admin, nil), http.StatusNotFound)
}

func TestSubmitAnswersOverHTTP(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)
	alice := s.login("alice", false)
	bob := s.login("bob", false)
	poll := s.createPoll(owner)
	foreign := s.createPoll(owner)
	single, text := poll.Questions[0], poll.Questions[1]

	w := s.do(http.MethodPost, "/responses", alice, map[string]any{"survey": poll.ID})
	expectStatus(t, w, http.StatusCreated)
	resp := decode[struct {
		ID         uint `json:"id"`
		Respondent uint `json:"respondent"`
	}](t, w)
	submit := fmt.Sprintf("/responses/%d/submit-answers", resp.ID)

	// Shape error: nothing stored, field errors returned.
	w = s.do(http.MethodPost, submit, alice, map[string]any{"answers": []map[string]any{
		{"question": single.ID, "choice_answer": []uint{single.Choices[0].ID}},
		{"text_answer": "missing question"},
	}})
	expectStatus(t, w, http.StatusBadRequest)
	if fields := decode[map[string][]string](t, w); len(fields["question"]) == 0 {
		t.Errorf("expected question error, got %s", w.Body.String())
	}

	// Integrity error: nothing stored, {"error": ...}.
	w = s.do(http.MethodPost, submit, alice, map[string]any{"answers": []map[string]any{
		{"question": single.ID, "choice_answer": []uint{single.Choices[0].ID}},
		{"question": foreign.Questions[1].ID, "text_answer": "wrong survey"},
	}})
	expectStatus(t, w, http.StatusBadRequest)
	if body := decode[map[string]string](t, w); body["error"] != "Question does not belong to survey" {
		t.Errorf("error = %q", body["error"])
	}

	var answers int64
	s.db.Model(&model.Answer{}).Count(&answers)
	if answers != 0 {
		t.Fatalf("rejected batches stored %d answers", answers)
	}

	// Another user cannot see or submit to alice's response.
	expectStatus(t, s.do(http.MethodPost, submit, bob, map[string]any{"answers": []map[string]any{}}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodGet, fmt.Sprintf("/responses/%d", resp.ID), bob, nil), http.StatusNotFound)

	w = s.do(http.MethodPost, submit, alice, map[string]any{"answers": []map[string]any{
		{"question": single.ID, "choice_answer": []uint{single.Choices[1].ID}},
		{"question": text.ID, "text_answer": "It is calm"},
	}})
	expectStatus(t, w, http.StatusOK)
	if body := decode[map[string]string](t, w); body["status"] != "answers submitted" {
		t.Errorf("status = %q", body["status"])
	}

	w = s.do(http.MethodGet, "/answers", alice, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[[]map[string]any](t, w); len(got) != 2 {
		t.Errorf("alice sees %d answers, want 2", len(got))
	}
	w = s.do(http.MethodGet, "/answers", bob, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[[]map[string]any](t, w); len(got) != 0 {
		t.Errorf("bob sees %d answers, want 0", len(got))
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/surveys/%d/statistics", poll.ID), "", nil)
	expectStatus(t, w, http.StatusOK)
	stats := decode[struct {
		TotalResponses int64 `json:"total_responses"`
		Questions      []struct {
			TotalAnswers int64 `json:"total_answers"`
			Choices      []struct {
				Count      int64   `json:"count"`
				Percentage float64 `json:"percentage"`
			} `json:"choices"`
			SampleAnswers []string `json:"sample_answers"`
		} `json:"questions"`
	}](t, w)
	if stats.TotalResponses != 1 || stats.Questions[0].Choices[1].Percentage != 100 {
		t.Errorf("unexpected statistics: %+v", stats)
	}
	if len(stats.Questions[1].SampleAnswers) != 1 {
		t.Errorf("sample answers = %v", stats.Questions[1].SampleAnswers)
	}

	expectStatus(t, s.do(http.MethodDelete, fmt.Sprintf("/responses/%d", resp.ID), alice, nil), http.StatusNoContent)
	s.db.Model(&model.Answer{}).Count(&answers)
	if answers != 0 {
		t.Errorf("answers after response delete = %d, want 0", answers)
	}
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "carol", "password1": "longpassword", "password2": "different1",
	})
	expectStatus(t, w, http.StatusBadRequest)

	w = s.do(http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "carol", "password1": "longpassword", "password2": "longpassword",
	})
	expectStatus(t, w, http.StatusCreated)
	expectStatus(t, s.do(http.MethodPost, "/auth/registration", "", map[string]any{
		"username": "carol", "password1": "longpassword", "password2": "longpassword",
	}), http.StatusBadRequest)

	expectStatus(t, s.do(http.MethodPost, "/auth/login", "", map[string]any{"username": "carol", "password": "wrong"}), http.StatusUnauthorized)

	w = s.do(http.MethodPost, "/auth/login", "", map[string]any{"username": "carol", "password": "longpassword"})
	expectStatus(t, w, http.StatusOK)
	key := decode[map[string]any](t, w)["key"].(string)

	w = s.do(http.MethodGet, "/auth/user", key, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[map[string]any](t, w)["username"]; got != "carol" {
		t.Errorf("username = %v", got)
	}

	expectStatus(t, s.do(http.MethodPost, "/auth/password/change", key, map[string]any{
		"old_password": "wrong", "new_password1": "newpassword", "new_password2": "newpassword",
	}), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPost, "/auth/password/change", key, map[string]any{
		"old_password": "longpassword", "new_password1": "newpassword", "new_password2": "newpassword",
	}), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/auth/login", "", map[string]any{"username": "carol", "password": "newpassword"}), http.StatusOK)

	expectStatus(t, s.do(http.MethodPost, "/auth/logout", key, nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/auth/user", key, nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/surveys", "garbage-token", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodGet, "/auth/user", "", nil), http.StatusUnauthorized)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		expectStatus(t, w, http.StatusOK)
	}
}

func TestDemotedAdminLosesAccess(t *testing.T) {
	s := newTestServer(t)
	owner := s.login("owner", false)
	admin := s.login("admin", true)
	poll := s.createPoll(owner)
	questions := fmt.Sprintf("/surveys/%d/questions", poll.ID)

	expectStatus(t, s.do(http.MethodGet, questions, admin, nil), http.StatusOK)

	s.db.Model(&model.User{}).Where("username = ?", "admin").Update("is_admin", false)
	expectStatus(t, s.do(http.MethodGet, questions, admin, nil), http.StatusForbidden)

	s.db.Where("username = ?", "admin").Delete(&model.User{})
	expectStatus(t, s.do(http.MethodGet, "/surveys", admin, nil), http.StatusUnauthorized)
}
