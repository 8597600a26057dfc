package controllers

import (
	"fmt"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SurveyController struct {
	svc *surveys.Service
}

func NewSurveyController(svc *surveys.Service) *SurveyController {
	return &SurveyController{svc: svc}
}

// AddSectionRequest body ของ survey/draft/:id/section
type AddSectionRequest struct {
	Questions []models.Question `json:"questions"`
}

// UpdateQuestionRequest body ของ survey/draft/:id/question
type UpdateQuestionRequest struct {
	SectionIndex  int                   `json:"section_index"`
	QuestionIndex int                   `json:"question_index"`
	Patch         surveys.QuestionPatch `json:"patch"`
}

// ReorderRequest body ของ survey/draft/:id/reorder
type ReorderRequest struct {
	SectionIndex int `json:"section_index"`
	From         int `json:"from"`
	To           int `json:"to"`
}

// CreateSurvey godoc
// @Summary      Create a survey
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.Survey true "Survey document"
// @Success      201  {object}  models.Survey
// @Failure      422  {object}  models.ErrorResponse
// @Router       /survey/create [post]
func (h *SurveyController) CreateSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	var body models.Survey
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	survey, err := h.svc.Create(c.Context(), userID, &body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Survey created successfully", survey)
}

// GetSurvey godoc
// @Summary      Get one of my surveys
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.Survey
// @Failure      404  {object}  models.ErrorResponse
// @Router       /survey/{id} [get]
func (h *SurveyController) GetSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	survey, err := h.svc.Get(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Survey retrieved successfully", survey)
}

// UpdateSurvey godoc
// @Summary      Replace the survey document
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body models.Survey true "Survey document"
// @Success      200  {object}  models.Survey
// @Failure      422  {object}  models.ErrorResponse
// @Router       /survey/update/{id} [put]
func (h *SurveyController) UpdateSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body models.Survey
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	survey, err := h.svc.Update(c.Context(), userID, id, &body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Survey updated successfully", survey)
}

// DeleteSurvey godoc
// @Summary      Delete a survey
// @Tags         surveys
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /survey/{id} [delete]
func (h *SurveyController) DeleteSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	if err := h.svc.Delete(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Survey deleted successfully"})
}

// ListSurveys godoc
// @Summary      List my surveys
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "Page number"
// @Param        page_size query int false "Items per page"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /survey [get]
func (h *SurveyController) ListSurveys(c *fiber.Ctx) error {
	return h.list(c, surveys.SearchFilter{})
}

// SearchSurveys godoc
// @Summary      Search my surveys by topic and status
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        search_term query string false "Topic contains"
// @Param        status      query string false "draft | published | closed"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Items per page"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /survey/search [get]
func (h *SurveyController) SearchSurveys(c *fiber.Ctx) error {
	return h.list(c, surveys.SearchFilter{
		SearchTerm: c.Query("search_term"),
		Status:     c.Query("status"),
	})
}

func (h *SurveyController) list(c *fiber.Ctx, filter surveys.SearchFilter) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	page, err := h.svc.List(c.Context(), userID, filter, pagination(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// SetSurveyStatus godoc
// @Summary      Change survey status
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body models.SurveyStatusRequest true "New status"
// @Success      200  {object}  models.Survey
// @Router       /survey/status/{id} [patch]
func (h *SurveyController) SetSurveyStatus(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body models.SurveyStatusRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	survey, err := h.svc.SetStatus(c.Context(), userID, id, body.Status)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Survey status updated", survey)
}

// ShareSurvey godoc
// @Summary      Publish a survey and get its short link
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.ShareLink
// @Router       /survey/share/{id} [patch]
func (h *SurveyController) ShareSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	link, err := h.svc.Share(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Survey shared", link)
}

// ShareQRCode godoc
// @Summary      QR code (PNG) of the survey's public link
// @Tags         surveys
// @Produce      png
// @Security     BearerAuth
// @Param        id   path  string true  "Survey ID"
// @Param        size query int    false "Image size in pixels (128-1024)"
// @Success      200  {file}  file
// @Router       /survey/share/{id}/qrcode [get]
func (h *SurveyController) ShareQRCode(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	png, link, err := h.svc.ShareQRCode(c.Context(), userID, id, c.QueryInt("size"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set("X-Share-Link", link.Link)
	return c.Send(png)
}

// DuplicateSurvey godoc
// @Summary      Copy a survey as a new draft
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.DuplicateSurveyRequest true "Source survey"
// @Success      201  {object}  models.Survey
// @Router       /survey/duplicate [post]
func (h *SurveyController) DuplicateSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	var body models.DuplicateSurveyRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	sourceID, err := primitive.ObjectIDFromHex(body.SurveyID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey_id format")
	}
	survey, err := h.svc.Duplicate(c.Context(), userID, sourceID)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Survey duplicated", survey)
}

// DownloadSurvey godoc
// @Summary      Download a survey as a text document
// @Tags         surveys
// @Produce      plain
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {string}  string
// @Router       /survey/download/{id} [get]
func (h *SurveyController) DownloadSurvey(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	body, filename, err := h.svc.Download(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}

// GetPublicSurvey godoc
// @Summary      Open a published survey by id or short code
// @Tags         public
// @Produce      json
// @Param        id path string true "Survey ID or short URL code"
// @Success      200  {object}  models.Survey
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /ps/survey/{id} [get]
func (h *SurveyController) GetPublicSurvey(c *fiber.Ctx) error {
	survey, err := h.svc.GetPublic(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Survey retrieved successfully", survey)
}

// AddDraftSection godoc
// @Summary      Append a section to a draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body AddSectionRequest true "Questions of the new section"
// @Success      200  {object}  models.Survey
// @Router       /survey/draft/{id}/section [post]
func (h *SurveyController) AddDraftSection(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body AddSectionRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	survey, err := h.svc.AddSection(c.Context(), userID, id, body.Questions)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Section added", survey)
}

// UpdateDraftQuestion godoc
// @Summary      Patch one question of a draft
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body UpdateQuestionRequest true "Question position and patch"
// @Success      200  {object}  models.Survey
// @Router       /survey/draft/{id}/question [patch]
func (h *SurveyController) UpdateDraftQuestion(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body UpdateQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	survey, err := h.svc.UpdateQuestion(c.Context(), userID, id, body.SectionIndex, body.QuestionIndex, body.Patch)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Question updated", survey)
}

// ReorderDraftQuestions godoc
// @Summary      Move a question inside a section
// @Tags         drafts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body ReorderRequest true "Section and indices"
// @Success      200  {object}  models.Survey
// @Router       /survey/draft/{id}/reorder [patch]
func (h *SurveyController) ReorderDraftQuestions(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body ReorderRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	survey, err := h.svc.ReorderQuestions(c.Context(), userID, id, body.SectionIndex, body.From, body.To)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Questions reordered", survey)
}

// ResetDraft godoc
// @Summary      Clear a draft document
// @Tags         drafts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.Survey
// @Router       /survey/draft/{id}/reset [post]
func (h *SurveyController) ResetDraft(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	survey, err := h.svc.Reset(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Draft reset", survey)
}
