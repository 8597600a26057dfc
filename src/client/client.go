// Package client เป็น REST client ของ PollSensei API
//
// แนบ Bearer token จาก TokenStore ทุก request, เคลียร์ token เมื่อโดน 401
// และแปลง error body ของ server ให้เป็นข้อความเดียวที่แสดงผู้ใช้ได้ ไม่มีการ retry
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// NotAuthorizedMessage ข้อความสุดท้ายเมื่อหาอะไรจาก error ไม่ได้เลย
const NotAuthorizedMessage = "You are not Authorized. Log in to continue"

// ErrUnauthorized server ตอบ 401 (token ถูกล้างแล้ว ผู้ใช้ต้อง login ใหม่)
var ErrUnauthorized = errors.New("unauthorized")

// TokenStore ที่เก็บ access token ของผู้ใช้
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore เก็บ token ไว้ในหน่วยความจำ
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Clear() { s.SetToken("") }

// APIError request ที่ไม่สำเร็จ Message คือข้อความที่ unwrap แล้ว
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

type Client struct {
	base   string
	http   *http.Client
	tokens TokenStore
}

// New สร้าง client ถ้า tokens เป็น nil จะใช้ MemoryTokenStore
func New(baseURL string, tokens TokenStore, timeout time.Duration) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
	}
}

func (c *Client) Tokens() TokenStore { return c.tokens }

// Authenticated มี token อยู่หรือไม่
func (c *Client) Authenticated() bool { return c.tokens.Token() != "" }

// send ส่ง request แล้วคืน body ดิบเมื่อได้ 2xx
func (c *Client) send(ctx context.Context, method, path string, query url.Values, in interface{}) ([]byte, http.Header, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}

	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &APIError{Message: transportMessage(err), Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, &APIError{Status: res.StatusCode, Message: transportMessage(err), Err: err}
	}
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return raw, res.Header, nil
	}

	apiErr := &APIError{Status: res.StatusCode, Message: unwrapMessage(raw)}
	if res.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		apiErr.Err = ErrUnauthorized
	}
	return nil, nil, apiErr
}

// data ถอด {"message","data"} แล้วใส่ data ลง out
func (c *Client) data(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	raw, _, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// raw ถอดทั้ง body (ใช้กับ endpoint ที่คืน PaginatedResponse ตรงๆ)
func (c *Client) raw(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	raw, _, err := c.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// unwrapMessage errors[].msg → msg → message → ข้อความ default
func unwrapMessage(body []byte) string {
	var payload struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return NotAuthorizedMessage
	}

	if len(payload.Errors) > 0 {
		msgs := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			msgs = append(msgs, e.Msg)
		}
		return strings.Join(msgs, ", ") + "."
	}
	if payload.Msg != "" {
		return payload.Msg
	}
	if payload.Message != "" {
		return payload.Message
	}
	return NotAuthorizedMessage
}

func transportMessage(err error) string {
	if err == nil || err.Error() == "" {
		return NotAuthorizedMessage
	}
	return err.Error()
}

// Page ผลลัพธ์แบบแบ่งหน้าของ server
type Page[T any] struct {
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprint(pageSize))
	}
	return q
}
