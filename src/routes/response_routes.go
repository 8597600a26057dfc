package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func responseRoutes(app *fiber.App, h *controllers.ResponseController) {
	response := app.Group("/response", middleware.AuthJWT)

	response.Post("/upload", h.UploadResponse)
	response.Post("/validate/:id", h.ValidateSurveyResponses)
	response.Get("/validate/individual/:id", h.ListValidatedResponses)
	response.Delete("/delete/:id", h.DeleteResponse)
	response.Patch("/restore/:id", h.RestoreResponse)
	response.Get("/export", h.ExportResponses)
	response.Patch("/transcription/:id", h.UpdateTranscription)
	response.Get("/summary/:id", h.ResponseSummary)
	response.Get("/respondents-names/:id", h.RespondentNames)
}
