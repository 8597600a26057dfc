package ai

import (
	"context"
	"log"
	"strings"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/utils"
)

// Engine ส่วนของ engine client ที่ใช้ในโมดูลนี้
type Engine interface {
	GenerateQuestions(ctx context.Context, req engine.GenerateQuestionsRequest) (*engine.GenerateQuestionsResponse, error)
	GenerateTopics(ctx context.Context, req engine.GenerateTopicsRequest) (*engine.GenerateTopicsResponse, error)
	GenerateSingleQuestion(ctx context.Context, req engine.GenerateSingleQuestionRequest) (*engine.GenerateSingleQuestionResponse, error)
	Chat(ctx context.Context, req engine.ChatRequest) (*engine.ChatResponse, error)
}

// GeneratedQuestions ผลลัพธ์ที่ส่งกลับ frontend: คำถามดิบของ engine และคำถามที่แปลงแล้ว
type GeneratedQuestions struct {
	ConversationID string            `json:"conversation_id"`
	Topic          string            `json:"topic,omitempty"`
	Response       []engine.Question `json:"response"`
	Questions      []models.Question `json:"questions"`
	Section        models.Section    `json:"section"`
}

type GeneratedQuestion struct {
	ConversationID string          `json:"conversation_id"`
	Response       engine.Question `json:"response"`
	Question       models.Question `json:"question"`
}

type Service struct {
	engine Engine
	hub    *Hub
}

// NewService hub เป็น nil ได้ (ไม่มี redis) แชทจะใช้งานไม่ได้
func NewService(e Engine, hub *Hub) *Service {
	return &Service{engine: e, hub: hub}
}

func validate(v interface{}) error {
	return utils.NewValidationError(utils.ValidateStruct(v))
}

func (s *Service) GenerateQuestions(ctx context.Context, req engine.GenerateQuestionsRequest) (*GeneratedQuestions, error) {
	req.UserQuery = strings.TrimSpace(req.UserQuery)
	if err := validate(req); err != nil {
		return nil, err
	}
	out, err := s.engine.GenerateQuestions(ctx, req)
	if err != nil {
		log.Println("❌ [ai] generate-questions:", err)
		return nil, err
	}

	questions := MapQuestions(out.Response)
	log.Printf("✅ [ai] generated %d questions conversation=%s", len(questions), out.ConversationID)
	return &GeneratedQuestions{
		ConversationID: out.ConversationID,
		Topic:          out.Topic,
		Response:       out.Response,
		Questions:      questions,
		Section:        models.Section{Questions: questions},
	}, nil
}

func (s *Service) GenerateTopics(ctx context.Context, req engine.GenerateTopicsRequest) (*engine.GenerateTopicsResponse, error) {
	req.UserQuery = strings.TrimSpace(req.UserQuery)
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.engine.GenerateTopics(ctx, req)
}

func (s *Service) GenerateSingleQuestion(ctx context.Context, req engine.GenerateSingleQuestionRequest) (*GeneratedQuestion, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	out, err := s.engine.GenerateSingleQuestion(ctx, req)
	if err != nil {
		return nil, err
	}
	return &GeneratedQuestion{
		ConversationID: out.ConversationID,
		Response:       out.Response,
		Question:       MapQuestion(out.Response),
	}, nil
}

// Chat ส่งข้อความผู้ใช้ให้ engine แล้วกระจายทั้งสอง event ให้ผู้ที่ subscribe อยู่
func (s *Service) Chat(ctx context.Context, req engine.ChatRequest) (*ChatEvent, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if s.hub == nil {
		return nil, ErrChatUnavailable
	}

	if err := s.hub.Publish(ctx, ChatEvent{
		Name:           EventUserMessage,
		ConversationID: req.ConversationID,
		Payload: map[string]interface{}{
			"query":        req.Query,
			"survey_id":    req.SurveyID,
			"survey_stage": req.SurveyStage,
		},
	}); err != nil {
		return nil, err
	}

	reply, err := s.engine.Chat(ctx, req)
	if err != nil {
		log.Println("❌ [ai] chat:", err)
		return nil, err
	}

	ev := ChatEvent{
		Name:           EventAIMessage,
		ConversationID: req.ConversationID,
		Payload:        map[string]interface{}{"response": reply.Response},
	}
	if err := s.hub.Publish(ctx, ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *Service) History(ctx context.Context, conversationID string) ([]ChatEvent, error) {
	if s.hub == nil {
		return nil, ErrChatUnavailable
	}
	return s.hub.History(ctx, conversationID)
}

func (s *Service) Subscribe(ctx context.Context, conversationID string) (<-chan ChatEvent, error) {
	if s.hub == nil {
		return nil, ErrChatUnavailable
	}
	return s.hub.Subscribe(ctx, conversationID)
}
