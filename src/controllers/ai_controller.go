package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"PollSensei-Backend/src/services/ai"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

const ssePing = 15 * time.Second

type AIController struct {
	svc *ai.Service
}

func NewAIController(svc *ai.Service) *AIController {
	return &AIController{svc: svc}
}

// GenerateQuestions godoc
// @Summary      Generate survey questions from a prompt
// @Description  Same handler serves /survey/ai/... (signed in) and /unauth/ai/... (guest)
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body body engine.GenerateQuestionsRequest true "Prompt"
// @Success      200  {object}  ai.GeneratedQuestions
// @Failure      502  {object}  models.ErrorResponse
// @Router       /survey/ai/generate-questions [post]
func (h *AIController) GenerateQuestions(c *fiber.Ctx) error {
	var body engine.GenerateQuestionsRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	out, err := h.svc.GenerateQuestions(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Questions generated", out)
}

// GenerateTopics godoc
// @Summary      Suggest survey topics
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body body engine.GenerateTopicsRequest true "Prompt"
// @Success      200  {object}  engine.GenerateTopicsResponse
// @Router       /survey/ai/generate-topics [post]
func (h *AIController) GenerateTopics(c *fiber.Ctx) error {
	var body engine.GenerateTopicsRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	out, err := h.svc.GenerateTopics(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Topics generated", out)
}

// GenerateSingleQuestion godoc
// @Summary      Generate one more question in a conversation
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body body engine.GenerateSingleQuestionRequest true "Prompt"
// @Success      200  {object}  ai.GeneratedQuestion
// @Router       /survey/ai/generate-single-question [post]
func (h *AIController) GenerateSingleQuestion(c *fiber.Ctx) error {
	var body engine.GenerateSingleQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	out, err := h.svc.GenerateSingleQuestion(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Question generated", out)
}

// Chat godoc
// @Summary      Send a chat message to the assistant
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body body engine.ChatRequest true "Message"
// @Success      200  {object}  ai.ChatEvent
// @Failure      503  {object}  models.ErrorResponse
// @Router       /survey/ai/chat [post]
func (h *AIController) Chat(c *fiber.Ctx) error {
	var body engine.ChatRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	ev, err := h.svc.Chat(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Message sent", ev)
}

// ChatHistory godoc
// @Summary      Recent events of a conversation
// @Tags         ai
// @Produce      json
// @Param        conversation_id path string true "Conversation ID"
// @Success      200  {array}  ai.ChatEvent
// @Router       /survey/ai/chat/{conversation_id}/history [get]
func (h *AIController) ChatHistory(c *fiber.Ctx) error {
	events, err := h.svc.History(c.Context(), c.Params("conversation_id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "History retrieved successfully", events)
}

// ChatStream godoc
// @Summary      Server-sent events of a conversation
// @Tags         ai
// @Produce      text/event-stream
// @Param        conversation_id path string true "Conversation ID"
// @Success      200  {string}  string
// @Router       /survey/ai/chat/{conversation_id}/stream [get]
func (h *AIController) ChatStream(c *fiber.Ctx) error {
	conversationID := c.Params("conversation_id")
	ctx, cancel := context.WithCancel(context.Background())
	events, err := h.svc.Subscribe(ctx, conversationID)
	if err != nil {
		cancel()
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ping := time.NewTicker(ssePing)
		defer ping.Stop()

		fmt.Fprintf(w, "event: connected\ndata: {\"conversation_id\":%q}\n\n", conversationID)
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case ev, open := <-events:
				if !open {
					return
				}
				if err := writeEvent(w, ev); err != nil {
					log.Println("⚠️ [ai] stream closed:", err)
					return
				}
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, ev ai.ChatEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return w.Flush()
}
