package controllers

import (
	"fmt"
	"time"

	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/responses"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

type ResponseController struct {
	svc *responses.Service
}

func NewResponseController(svc *responses.Service) *ResponseController {
	return &ResponseController{svc: svc}
}

// parseDate รับ YYYY-MM-DD หรือ RFC3339
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return &t, nil
}

// parseResponseFilter อ่าน query ของ response/validate/individual
func parseResponseFilter(c *fiber.Ctx) (models.ResponseFilter, []models.FieldError) {
	f := models.ResponseFilter{
		Countries:    splitList(c, "countries"),
		Name:         c.Query("name"),
		ResponseID:   c.Query("response_id"),
		Question:     c.Query("question"),
		QuestionType: c.Query("question_type"),
		Answer:       c.Query("answer"),
	}
	var errs []models.FieldError
	for key, dst := range map[string]**time.Time{
		"date":       &f.Date,
		"start_date": &f.StartDate,
		"end_date":   &f.EndDate,
	} {
		t, err := parseDate(c.Query(key))
		if err != nil {
			errs = append(errs, models.FieldError{Field: key, Msg: err.Error()})
			continue
		}
		*dst = t
	}
	if f.Date != nil && (f.StartDate != nil || f.EndDate != nil) {
		errs = append(errs, models.FieldError{Field: "date", Msg: "date cannot be combined with start_date or end_date"})
	}
	if f.ResponseID != "" {
		if _, err := primitive.ObjectIDFromHex(f.ResponseID); err != nil {
			errs = append(errs, models.FieldError{Field: "response_id", Msg: "invalid response_id"})
		}
	}
	return f, errs
}

// UploadResponse godoc
// @Summary      Upload a response on behalf of a respondent
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.SubmitResponseRequest true "Response"
// @Success      201  {object}  models.Response
// @Failure      422  {object}  models.ErrorResponse
// @Router       /response/upload [post]
func (h *ResponseController) UploadResponse(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	var body models.SubmitResponseRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	resp, err := h.svc.Upload(c.Context(), userID, body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Response uploaded successfully", resp)
}

// SubmitResponse godoc
// @Summary      Answer a published survey
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body body models.SubmitResponseRequest true "Response"
// @Success      201  {object}  models.Response
// @Failure      403  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /ps/survey/respond [post]
func (h *ResponseController) SubmitResponse(c *fiber.Ctx) error {
	var body models.SubmitResponseRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	resp, err := h.svc.Submit(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Thank you for your response", resp)
}

// ValidateSurveyResponses godoc
// @Summary      Validate every response of a survey
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.SurveyValidationSummary
// @Router       /response/validate/{id} [post]
func (h *ResponseController) ValidateSurveyResponses(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	summary, err := h.svc.ValidateSurvey(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Responses validated", summary)
}

// ListValidatedResponses godoc
// @Summary      Paginated validated responses with counts
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id            path  string false "Survey ID"
// @Param        page          query int    false "Page number"
// @Param        page_size     query int    false "Items per page"
// @Param        countries     query string false "Comma separated countries"
// @Param        date          query string false "YYYY-MM-DD"
// @Param        start_date    query string false "YYYY-MM-DD"
// @Param        end_date      query string false "YYYY-MM-DD"
// @Param        name          query string false "Respondent name contains"
// @Param        response_id   query string false "Response ID"
// @Param        question      query string false "Question contains"
// @Param        question_type query string false "Question type"
// @Param        answer        query string false "Answer contains"
// @Param        deleted       query bool   false "Show the Deleted tab"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /response/validate/individual/{id} [get]
func (h *ResponseController) ListValidatedResponses(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	filter, ferrs := parseResponseFilter(c)
	if len(ferrs) > 0 {
		return utils.HandleValidationError(c, ferrs)
	}
	page, err := h.svc.ValidatedResponses(c.Context(), userID, id, filter, c.QueryBool("deleted"), pagination(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// DeleteResponse godoc
// @Summary      Move a response to the Deleted tab
// @Tags         responses
// @Security     BearerAuth
// @Param        id path string true "Response ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /response/delete/{id} [delete]
func (h *ResponseController) DeleteResponse(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "Response deleted successfully"})
}

// RestoreResponse godoc
// @Summary      Bring a deleted response back
// @Tags         responses
// @Security     BearerAuth
// @Param        id path string true "Response ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /response/restore/{id} [patch]
func (h *ResponseController) RestoreResponse(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	if err := h.svc.Restore(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Response restored successfully"})
}

// ExportResponses godoc
// @Summary      Export responses as csv or json
// @Tags         responses
// @Produce      text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        survey_id   query string false "Export the whole survey"
// @Param        response_id query string false "Export a single response"
// @Param        format      query string false "csv | json"
// @Success      200  {file}  file
// @Router       /response/export [get]
func (h *ResponseController) ExportResponses(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	file, err := h.svc.Export(c.Context(), userID, c.Query("survey_id"), c.Query("response_id"), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Body)
}

// UpdateTranscription godoc
// @Summary      Edit a media answer transcription
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Response ID"
// @Param        body body models.TranscriptionUpdateRequest true "Transcription"
// @Success      200  {object}  models.Response
// @Router       /response/transcription/{id} [patch]
func (h *ResponseController) UpdateTranscription(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body models.TranscriptionUpdateRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	resp, err := h.svc.UpdateTranscription(c.Context(), userID, id, body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Transcription updated", resp)
}

// ResponseSummary godoc
// @Summary      Per-question answer counts
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {array}  models.QuestionSummary
// @Router       /response/summary/{id} [get]
func (h *ResponseController) ResponseSummary(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	summary, err := h.svc.Summary(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Summary retrieved successfully", summary)
}

// RespondentNames godoc
// @Summary      Distinct respondent names of a survey
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {array}  string
// @Router       /response/respondents-names/{id} [get]
func (h *ResponseController) RespondentNames(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	names, err := h.svc.RespondentNames(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Respondent names retrieved successfully", names)
}
