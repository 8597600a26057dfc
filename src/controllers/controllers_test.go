package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"PollSensei-Backend/src/jobs"
	"PollSensei-Backend/src/middleware"
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/ai"
	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/services/responses"
	"PollSensei-Backend/src/services/superadmin"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/services/users"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memSurveys เก็บ survey ไว้ใน map แทน mongo
type memSurveys struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]models.Survey
}

func newMemSurveys() *memSurveys {
	return &memSurveys{docs: map[primitive.ObjectID]models.Survey{}}
}

func (m *memSurveys) Insert(_ context.Context, s *models.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[s.ID] = *s
	return nil
}

func (m *memSurveys) FindByID(_ context.Context, id primitive.ObjectID) (*models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, found := m.docs[id]
	if !found {
		return nil, surveys.ErrSurveyNotFound
	}
	return &s, nil
}

func (m *memSurveys) FindByShortURL(_ context.Context, code string) (*models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.docs {
		if s.ShortURL == code {
			s := s
			return &s, nil
		}
	}
	return nil, surveys.ErrSurveyNotFound
}

func (m *memSurveys) Replace(_ context.Context, s *models.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[s.ID] = *s
	return nil
}

func (m *memSurveys) SetFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, found := m.docs[id]
	if !found {
		return surveys.ErrSurveyNotFound
	}
	if v, isSet := fields["status"].(string); isSet {
		s.Status = v
	}
	if v, isSet := fields["short_url"].(string); isSet {
		s.ShortURL = v
	}
	m.docs[id] = s
	return nil
}

func (m *memSurveys) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *memSurveys) List(_ context.Context, userID primitive.ObjectID, _ surveys.SearchFilter, _ models.PaginationParams) ([]models.Survey, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Survey{}
	for _, s := range m.docs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func token(t *testing.T, userID primitive.ObjectID, role string) string {
	tok, err := utils.GenerateJWT(userID.Hex(), "owner@example.com", role)
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, app *fiber.App, method, path, tok string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(raw, &out)
	return res.StatusCode, out
}

func surveyApp(repo *memSurveys) *fiber.App {
	h := NewSurveyController(surveys.NewService(repo, "https://app.pollsensei.test", time.Minute))
	r := NewResponseController(responses.NewService(nil, repo))

	app := fiber.New()
	survey := app.Group("/survey", middleware.AuthJWT)
	survey.Post("/create", h.CreateSurvey)
	survey.Patch("/share/:id", h.ShareSurvey)
	survey.Patch("/status/:id", h.SetSurveyStatus)
	survey.Patch("/draft/:id/reorder", h.ReorderDraftQuestions)
	survey.Get("/download/:id", h.DownloadSurvey)
	survey.Get("/:id", h.GetSurvey)
	app.Get("/ps/survey/:id", h.GetPublicSurvey)
	app.Get("/response/validate/individual/:id", middleware.AuthJWT, r.ListValidatedResponses)
	return app
}

var feedbackBody = map[string]interface{}{
	"topic": "Customer feedback",
	"sections": []map[string]interface{}{{
		"questions": []map[string]interface{}{
			{"question": "How was it?", "question_type": "single_choice", "options": []string{"Good", "Bad"}},
			{"question": "Anything else?", "question_type": "long_text"},
			{"question": "Rate us", "question_type": "star_rating", "min": 1, "max": 5},
		},
	}},
}

func TestSurveyEndpoints(t *testing.T) {
	repo := newMemSurveys()
	app := surveyApp(repo)
	owner := primitive.NewObjectID()
	tok := token(t, owner, models.RoleUser)

	status, _ := do(t, app, "POST", "/survey/create", "", feedbackBody)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := do(t, app, "POST", "/survey/create", tok, feedbackBody)
	require.Equal(t, fiber.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	id := data["id"].(string)
	assert.Equal(t, "draft", data["status"])

	// draft ยังไม่เปิดสาธารณะ
	status, _ = do(t, app, "GET", "/ps/survey/"+id, "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, "PATCH", "/survey/draft/"+id+"/reorder", tok, ReorderRequest{From: 0, To: 2})
	require.Equal(t, fiber.StatusOK, status)
	questions := body["data"].(map[string]interface{})["sections"].([]interface{})[0].(map[string]interface{})["questions"].([]interface{})
	order := []string{}
	for _, q := range questions {
		order = append(order, q.(map[string]interface{})["question"].(string))
	}
	assert.Equal(t, []string{"Anything else?", "Rate us", "How was it?"}, order)

	status, body = do(t, app, "PATCH", "/survey/draft/"+id+"/reorder", tok, ReorderRequest{From: 0, To: 9})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, surveys.ErrIndexOutOfRange.Error(), body["message"])

	status, body = do(t, app, "PATCH", "/survey/share/"+id, tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	code := body["data"].(map[string]interface{})["short_url"].(string)
	assert.NotEmpty(t, code)

	status, _ = do(t, app, "GET", "/ps/survey/"+code, "", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, "PATCH", "/survey/status/"+id, tok, models.SurveyStatusRequest{Status: models.SurveyStatusClosed})
	require.Equal(t, fiber.StatusOK, status)
	status, body = do(t, app, "GET", "/ps/survey/"+id, "", nil)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, surveys.ErrSurveyClosed.Error(), body["message"])

	stranger := token(t, primitive.NewObjectID(), models.RoleUser)
	status, _ = do(t, app, "GET", "/survey/"+id, stranger, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = do(t, app, "GET", "/survey/not-an-id", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSurveyValidationReturnsFieldErrors(t *testing.T) {
	app := surveyApp(newMemSurveys())
	tok := token(t, primitive.NewObjectID(), models.RoleUser)

	status, body := do(t, app, "POST", "/survey/create", tok, map[string]interface{}{
		"topic": "Broken",
		"sections": []map[string]interface{}{{
			"questions": []map[string]interface{}{{"question": "Pick", "question_type": "drop_down"}},
		}},
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := body["errors"].([]interface{})
	require.NotEmpty(t, errs)
	assert.Equal(t, "sections[0].questions[0].options", errs[0].(map[string]interface{})["field"])
}

func TestDownloadSetsAttachment(t *testing.T) {
	repo := newMemSurveys()
	app := surveyApp(repo)
	owner := primitive.NewObjectID()
	tok := token(t, owner, models.RoleUser)

	_, body := do(t, app, "POST", "/survey/create", tok, feedbackBody)
	id := body["data"].(map[string]interface{})["id"].(string)

	req := httptest.NewRequest("GET", "/survey/download/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get(fiber.HeaderContentDisposition), "customer_feedback.txt")
	text, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(text), "How was it?")
}

func TestResponseFilterRejectsBadDates(t *testing.T) {
	app := surveyApp(newMemSurveys())
	tok := token(t, primitive.NewObjectID(), models.RoleUser)

	status, body := do(t, app, "GET", "/response/validate/individual/"+primitive.NewObjectID().Hex()+"?date=yesterday", tok, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "date", body["errors"].([]interface{})[0].(map[string]interface{})["field"])
}

func TestResponseFilterRejectsBadResponseIDAndMixedDates(t *testing.T) {
	app := surveyApp(newMemSurveys())
	tok := token(t, primitive.NewObjectID(), models.RoleUser)
	base := "/response/validate/individual/" + primitive.NewObjectID().Hex()

	status, body := do(t, app, "GET", base+"?response_id=nope", tok, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "response_id", body["errors"].([]interface{})[0].(map[string]interface{})["field"])

	status, body = do(t, app, "GET", base+"?date=2024-03-05&start_date=2024-03-01", tok, nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "date", body["errors"].([]interface{})[0].(map[string]interface{})["field"])
}

func TestParseResponseFilter(t *testing.T) {
	app := fiber.New()
	var got models.ResponseFilter
	app.Get("/", func(c *fiber.Ctx) error {
		f, errs := parseResponseFilter(c)
		if len(errs) > 0 {
			return c.SendStatus(fiber.StatusUnprocessableEntity)
		}
		got = f
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/?countries=TH,US&countries=JP&date=2024-03-05&name=ann&question_type=checkbox", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	assert.Equal(t, []string{"TH", "US", "JP"}, got.Countries)
	require.NotNil(t, got.Date)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *got.Date)
	assert.Nil(t, got.StartDate)
	assert.Equal(t, "ann", got.Name)
	assert.Equal(t, "checkbox", got.QuestionType)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{surveys.ErrSurveyNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrap: %w", users.ErrUserNotFound), fiber.StatusNotFound},
		{surveys.ErrForbidden, fiber.StatusForbidden},
		{auth.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{auth.ErrNotVerified, fiber.StatusForbidden},
		{users.ErrEmailTaken, fiber.StatusConflict},
		{analysis.ErrNoVariables, fiber.StatusBadRequest},
		{superadmin.ErrInvalidPeriod, fiber.StatusBadRequest},
		{utils.ErrOTPMismatch, fiber.StatusBadRequest},
		{&engine.StatusError{Path: "/chat", Status: 500}, fiber.StatusBadGateway},
		{ai.ErrChatUnavailable, fiber.StatusServiceUnavailable},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

type fakeStatter struct{}

func (fakeStatter) Stats(queue string) (*jobs.QueueStats, error) {
	return &jobs.QueueStats{Queue: queue, Pending: 2}, nil
}

func TestSuperAdminQueueStats(t *testing.T) {
	build := func(q QueueStatter) *fiber.App {
		h := NewSuperAdminController(superadmin.NewService(nil, nil, nil, nil), q)
		app := fiber.New()
		app.Get("/superadmin/jobs", append(middleware.RequireSuperAdmin(), h.QueueStats)...)
		return app
	}
	admin := token(t, primitive.NewObjectID(), models.RoleSuperAdmin)
	user := token(t, primitive.NewObjectID(), models.RoleUser)

	status, _ := do(t, build(fakeStatter{}), "GET", "/superadmin/jobs", user, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := do(t, build(fakeStatter{}), "GET", "/superadmin/jobs", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "default", data["queue"])
	assert.Equal(t, float64(2), data["pending"])

	status, _ = do(t, build(nil), "GET", "/superadmin/jobs", admin, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}
