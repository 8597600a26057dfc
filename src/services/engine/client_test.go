package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PollSensei-Backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/survey/generate-questions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in GenerateQuestionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "coffee habits", in.UserQuery)

		w.Write([]byte(`{"conversation_id":"c-1","response":[{"Question":"How often?","Option type":"Multi-choice","Options":["Daily","Weekly"]}]}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL+"/", time.Second).GenerateQuestions(context.Background(), GenerateQuestionsRequest{UserQuery: "coffee habits"})

	require.NoError(t, err)
	assert.Equal(t, "c-1", out.ConversationID)
	require.Len(t, out.Response, 1)
	assert.Equal(t, "Multi-choice", out.Response[0].OptionType)
}

func TestRunTestsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("model offline"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).RunTests(context.Background(), models.TestLibraryFormatted{SurveyID: "x"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "model offline", se.Body)
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}

func TestEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Chat(context.Background(), ChatRequest{ConversationID: "c", Query: "hi"})
	assert.ErrorContains(t, err, "empty body")
}

func TestUnreachableEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).GenerateTopics(context.Background(), GenerateTopicsRequest{UserQuery: "x"})
	assert.ErrorIs(t, err, ErrEngineUnavailable)
}
