package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func surveyRoutes(app *fiber.App, h *controllers.SurveyController, r *controllers.ResponseController) {
	survey := app.Group("/survey", middleware.AuthJWT)

	survey.Get("/", h.ListSurveys)
	survey.Get("/search", h.SearchSurveys)
	survey.Post("/create", h.CreateSurvey)
	survey.Post("/duplicate", h.DuplicateSurvey)
	survey.Put("/update/:id", h.UpdateSurvey)
	survey.Patch("/status/:id", h.SetSurveyStatus)
	survey.Patch("/share/:id", h.ShareSurvey)
	survey.Get("/share/:id/qrcode", h.ShareQRCode)
	survey.Get("/download/:id", h.DownloadSurvey)

	draft := survey.Group("/draft/:id")
	draft.Post("/section", h.AddDraftSection)
	draft.Patch("/question", h.UpdateDraftQuestion)
	draft.Patch("/reorder", h.ReorderDraftQuestions)
	draft.Post("/reset", h.ResetDraft)

	survey.Get("/:id", h.GetSurvey)
	survey.Delete("/:id", h.DeleteSurvey)

	// ลิงก์สาธารณะสำหรับผู้ตอบ (ไม่ต้อง login)
	public := app.Group("/ps/survey")
	public.Post("/respond", r.SubmitResponse)
	public.Get("/:id", h.GetPublicSurvey)
}
