package routes

import (
	"PollSensei-Backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// Handlers controller ทั้งหมดที่ main ประกอบไว้
type Handlers struct {
	Auth       *controllers.AuthController
	Surveys    *controllers.SurveyController
	Responses  *controllers.ResponseController
	Analysis   *controllers.AnalysisController
	AI         *controllers.AIController
	SuperAdmin *controllers.SuperAdminController
}

func InitRoutes(app *fiber.App, h Handlers) {
	authRoutes(app, h.Auth)
	surveyRoutes(app, h.Surveys, h.Responses)
	responseRoutes(app, h.Responses)
	analysisRoutes(app, h.Analysis)
	aiRoutes(app, h.AI)
	superAdminRoutes(app, h.SuperAdmin)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
