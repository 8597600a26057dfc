package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/services/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tokens := &MemoryTokenStore{}
	return New(srv.URL+"/", tokens, time.Second), tokens
}

func TestBearerHeader(t *testing.T) {
	var seen []string
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{"message":"ok","data":{"email":"a@b.co"}}`))
	})

	_, err := c.Me(context.Background())
	require.NoError(t, err)

	tokens.SetToken("abc")
	user, err := c.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, seen)
	assert.Equal(t, "a@b.co", user.Email)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":401,"message":"Token has been revoked"}`))
	})
	tokens.SetToken("old")

	_, err := c.Me(context.Background())

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Token has been revoked", apiErr.Message)
	assert.Empty(t, tokens.Token())
}

func TestUnwrapMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"field errors", `{"message":"Validation failed","errors":[{"field":"a","msg":"a is required"},{"msg":"b too short"},{"msg":"c invalid"}]}`, "a is required, b too short, c invalid."},
		{"single field error", `{"errors":[{"msg":"email is required"}]}`, "email is required."},
		{"msg before message", `{"msg":"short","message":"long"}`, "short"},
		{"message", `{"message":"Survey not found"}`, "Survey not found"},
		{"empty object", `{}`, NotAuthorizedMessage},
		{"not json", `<html>bad gateway</html>`, NotAuthorizedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapMessage([]byte(tt.body)))
		})
	}
}

func TestErrorStatusKeepsToken(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":422,"message":"Validation failed","errors":[{"field":"topic","msg":"topic is required"}]}`))
	})
	tokens.SetToken("keep")

	_, err := c.CreateSurvey(context.Background(), models.Survey{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "topic is required.", apiErr.Message)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "keep", tokens.Token())
}

func TestTransportErrorNoRetry(t *testing.T) {
	c := New("http://127.0.0.1:1", nil, 200*time.Millisecond)

	_, err := c.Me(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
	assert.NotEqual(t, NotAuthorizedMessage, apiErr.Message)
}

func TestLoginStoresTokenLogoutClears(t *testing.T) {
	var calls int32
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"message":"Login successful","data":{"access_token":"jwt-1","user":{"email":"a@b.co"}}}`))
		case "/auth/logout":
			assert.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
		}
	})

	res, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.co", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", res.AccessToken)
	assert.Equal(t, "jwt-1", tokens.Token())

	assert.Error(t, c.Logout(context.Background()))
	assert.Empty(t, tokens.Token())
	assert.EqualValues(t, 2, calls)
}

func TestAIPathByToken(t *testing.T) {
	var paths []string
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"data":{"topics":["coffee"]}}`))
	})

	_, err := c.GenerateTopics(context.Background(), engine.GenerateTopicsRequest{UserQuery: "drinks"})
	require.NoError(t, err)
	tokens.SetToken("t")
	out, err := c.GenerateTopics(context.Background(), engine.GenerateTopicsRequest{UserQuery: "drinks"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/unauth/ai/generate-topics", "/survey/ai/generate-topics"}, paths)
	assert.Equal(t, []string{"coffee"}, out.Topics)
}

func TestValidatedResponsesQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/response/validate/individual/s1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, []string{"TH", "JP"}, q["countries"])
		assert.Equal(t, "2024-01-01", q.Get("start_date"))
		assert.Equal(t, "Ann", q.Get("name"))
		assert.Equal(t, "true", q.Get("deleted"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("page_size"))
		assert.Empty(t, q.Get("answer"))

		w.Write([]byte(`{"data":[{"respondent_name":"Ann","validCount":2,"invalidCount":1}],"total":6,"page":2,"page_size":5,"total_pages":2}`))
	})

	page, err := c.ValidatedResponses(context.Background(), "s1", ResponseQuery{
		Countries: []string{"TH", "JP"},
		StartDate: "2024-01-01",
		Name:      "Ann",
		Deleted:   true,
	}, 2, 5)

	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Ann", page.Data[0].RespondentName)
	assert.Equal(t, 2, page.Data[0].ValidCount)
}

func TestExportReturnsContentType(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "s1", r.URL.Query().Get("survey_id"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("respondent_name\nAnn\n"))
	})

	body, ct, err := c.ExportResponses(context.Background(), "s1", "", "csv")

	require.NoError(t, err)
	assert.Equal(t, "text/csv", ct)
	assert.Equal(t, "respondent_name\nAnn\n", string(body))
}

func TestAnalysisSession(t *testing.T) {
	var ran int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analysis/board/s1":
			w.Write([]byte(`{"data":{"variables":[{"id":"age","name":"age"}],"library":[{"id":"tTest","name":"T Test"}],"selected":null}}`))
		case "/analysis/run":
			atomic.AddInt32(&ran, 1)
			var in models.TestLibraryFormatted
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "s1", in.SurveyID)
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"data":{"status":"pending"}}`))
		}
	})

	s, err := c.OpenAnalysis(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, s.Board.Variables, 1)

	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, analysis.ErrNoVariables)
	assert.Zero(t, atomic.LoadInt32(&ran))

	assert.False(t, s.IsSelected("tTest"))
	require.True(t, s.ToggleTest("tTest"))
	assert.True(t, s.IsSelected("tTest"))
	require.True(t, s.Drop(s.Board.Variables[0], "tTest"))
	assert.False(t, s.Drop(s.Board.Variables[0], "tTest"))

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisPending, report.Status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&ran))
}
