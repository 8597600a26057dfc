package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func analysisRoutes(app *fiber.App, h *controllers.AnalysisController) {
	analysis := app.Group("/analysis", middleware.AuthJWT)

	analysis.Get("/library", h.GetTestLibrary)
	analysis.Get("/variables/:survey_id", h.GetVariables)
	analysis.Get("/board/:survey_id", h.GetBoard)
	analysis.Post("/run", h.RunAnalysis)
	analysis.Get("/report/:survey_id", h.GetReport)
}
