package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"PollSensei-Backend/src/models"
)

// ErrEngineUnavailable engine ตอบกลับผิดพลาดหรือเชื่อมต่อไม่ได้
var ErrEngineUnavailable = errors.New("analysis engine unavailable")

// StatusError engine ตอบกลับด้วยสถานะที่ไม่ใช่ 2xx
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("engine %s returned %d: %s", e.Path, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrEngineUnavailable }

// Client เรียก AI/analysis engine ผ่าน HTTP JSON
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &StatusError{Path: path, Status: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("engine %s returned empty body", path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode engine %s: %w", path, err)
	}
	return nil
}

// Question รูปแบบคำถามที่ engine ส่งกลับมา
type Question struct {
	Question   string   `json:"Question"`
	OptionType string   `json:"Option type"`
	Options    []string `json:"Options"`
}

type GenerateQuestionsRequest struct {
	UserQuery      string `json:"user_query" validate:"required"`
	SurveyType     string `json:"survey_type,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type GenerateQuestionsResponse struct {
	ConversationID string     `json:"conversation_id"`
	Topic          string     `json:"topic,omitempty"`
	Response       []Question `json:"response"`
}

type GenerateTopicsRequest struct {
	UserQuery string `json:"user_query" validate:"required"`
}

type GenerateTopicsResponse struct {
	ConversationID string   `json:"conversation_id,omitempty"`
	Topics         []string `json:"topics"`
}

type GenerateSingleQuestionRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	UserQuery      string `json:"user_query" validate:"required"`
	QuestionType   string `json:"question_type,omitempty"`
}

type GenerateSingleQuestionResponse struct {
	ConversationID string   `json:"conversation_id"`
	Response       Question `json:"response"`
}

type ChatRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
	Query          string `json:"query" validate:"required"`
	SurveyID       string `json:"survey_id,omitempty"`
	SurveyStage    string `json:"survey_stage,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

func (c *Client) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*GenerateQuestionsResponse, error) {
	var out GenerateQuestionsResponse
	if err := c.postJSON(ctx, "/survey/generate-questions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateTopics(ctx context.Context, req GenerateTopicsRequest) (*GenerateTopicsResponse, error) {
	var out GenerateTopicsResponse
	if err := c.postJSON(ctx, "/survey/generate-topics", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateSingleQuestion(ctx context.Context, req GenerateSingleQuestionRequest) (*GenerateSingleQuestionResponse, error) {
	var out GenerateSingleQuestionResponse
	if err := c.postJSON(ctx, "/survey/generate-single-question", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunTests ส่งชุด test ที่จัดไว้ให้ engine คำนวณ (ผลลัพธ์เป็น JSON อิสระ)
func (c *Client) RunTests(ctx context.Context, req models.TestLibraryFormatted) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := c.postJSON(ctx, "/analysis/run", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
