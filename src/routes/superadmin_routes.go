package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func superAdminRoutes(app *fiber.App, h *controllers.SuperAdminController) {
	admin := app.Group("/superadmin", middleware.RequireSuperAdmin()...)

	admin.Get("/faq", h.ListFAQs)
	admin.Post("/faq", h.CreateFAQ)
	admin.Get("/faq/:id", h.GetFAQ)
	admin.Put("/faq/:id", h.UpdateFAQ)
	admin.Delete("/faq/:id", h.DeleteFAQ)
	admin.Patch("/faq-status/:id", h.SetFAQStatus)

	admin.Get("/tutorial", h.ListTutorials)
	admin.Post("/tutorial", h.CreateTutorial)
	admin.Get("/tutorial/:id", h.GetTutorial)
	admin.Put("/tutorial/:id", h.UpdateTutorial)
	admin.Delete("/tutorial/:id", h.DeleteTutorial)
	admin.Patch("/tutorial-status/:id", h.SetTutorialStatus)

	admin.Get("/users", h.ListUsers)
	admin.Get("/overview", h.Overview)
	admin.Get("/survey-distribution", h.SurveyCreationDistribution)
	admin.Get("/survey-type-distribution", h.SurveyTypeDistribution)
	admin.Get("/jobs", h.QueueStats)
}
