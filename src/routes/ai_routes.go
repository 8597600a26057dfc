package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// aiRoutes ผู้ใช้ที่ login ใช้ /survey/ai ส่วน guest ใช้ /unauth/ai (handler เดียวกัน)
func aiRoutes(app *fiber.App, h *controllers.AIController) {
	register := func(group fiber.Router) {
		group.Post("/generate-questions", h.GenerateQuestions)
		group.Post("/generate-topics", h.GenerateTopics)
		group.Post("/generate-single-question", h.GenerateSingleQuestion)
		group.Post("/chat", h.Chat)
		group.Get("/chat/:conversation_id/history", h.ChatHistory)
		group.Get("/chat/:conversation_id/stream", h.ChatStream)
	}

	register(app.Group("/survey/ai", middleware.AuthJWT))
	register(app.Group("/unauth/ai"))
}
