package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrChatUnavailable = errors.New("chat requires redis")

const (
	EventUserMessage = "user_message"
	EventAIMessage   = "ai_message"

	historyLimit = 50
	historyTTL   = 24 * time.Hour
)

// ChatEvent ชื่อ event + payload แบบอิสระ
type ChatEvent struct {
	Name           string                 `json:"event"`
	ConversationID string                 `json:"conversation_id"`
	Payload        map[string]interface{} `json:"payload"`
	At             time.Time              `json:"at"`
}

// Hub กระจาย event ของแต่ละ conversation ผ่าน redis pub/sub และเก็บประวัติล่าสุด
type Hub struct {
	rdb *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb}
}

func channelKey(conversationID string) string { return "chat:" + conversationID }
func historyKey(conversationID string) string { return "chat:history:" + conversationID }

func (h *Hub) Publish(ctx context.Context, ev ChatEvent) error {
	if h == nil || h.rdb == nil {
		return ErrChatUnavailable
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pipe := h.rdb.TxPipeline()
	pipe.RPush(ctx, historyKey(ev.ConversationID), b)
	pipe.LTrim(ctx, historyKey(ev.ConversationID), -historyLimit, -1)
	pipe.Expire(ctx, historyKey(ev.ConversationID), historyTTL)
	pipe.Publish(ctx, channelKey(ev.ConversationID), b)
	_, err = pipe.Exec(ctx)
	return err
}

// History event ล่าสุด (เก่าสุดก่อน)
func (h *Hub) History(ctx context.Context, conversationID string) ([]ChatEvent, error) {
	if h == nil || h.rdb == nil {
		return nil, ErrChatUnavailable
	}
	raw, err := h.rdb.LRange(ctx, historyKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ChatEvent, 0, len(raw))
	for _, s := range raw {
		var ev ChatEvent
		if json.Unmarshal([]byte(s), &ev) == nil {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Subscribe คืน channel ของ event ใหม่ ปิดเมื่อ ctx ถูกยกเลิก
func (h *Hub) Subscribe(ctx context.Context, conversationID string) (<-chan ChatEvent, error) {
	if h == nil || h.rdb == nil {
		return nil, ErrChatUnavailable
	}
	sub := h.rdb.Subscribe(ctx, channelKey(conversationID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan ChatEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var ev ChatEvent
				if json.Unmarshal([]byte(m.Payload), &ev) != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
