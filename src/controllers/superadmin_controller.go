package controllers

import (
	"PollSensei-Backend/src/jobs"
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/superadmin"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// QueueStatter คือ *jobs.Queue
type QueueStatter interface {
	Stats(queue string) (*jobs.QueueStats, error)
}

type SuperAdminController struct {
	svc   *superadmin.Service
	queue QueueStatter
}

// NewSuperAdminController queue เป็น nil ได้เมื่อไม่มี redis
func NewSuperAdminController(svc *superadmin.Service, queue QueueStatter) *SuperAdminController {
	return &SuperAdminController{svc: svc, queue: queue}
}

// ListFAQs godoc
// @Summary      List FAQs
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        filter_by query string false "publish | unpublish | category name"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Items per page"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /superadmin/faq [get]
func (h *SuperAdminController) ListFAQs(c *fiber.Ctx) error {
	page, err := h.svc.ListFAQs(c.Context(), c.Query("filter_by"), pagination(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// CreateFAQ godoc
// @Summary      Create a FAQ (starts unpublished)
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.FAQRequest true "FAQ"
// @Success      201  {object}  models.FAQ
// @Failure      422  {object}  models.ErrorResponse
// @Router       /superadmin/faq [post]
func (h *SuperAdminController) CreateFAQ(c *fiber.Ctx) error {
	var body models.FAQRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	faq, err := h.svc.CreateFAQ(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "FAQ created successfully", faq)
}

// GetFAQ godoc
// @Summary      Get a FAQ
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "FAQ ID"
// @Success      200  {object}  models.FAQ
// @Router       /superadmin/faq/{id} [get]
func (h *SuperAdminController) GetFAQ(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	faq, err := h.svc.GetFAQ(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "FAQ retrieved successfully", faq)
}

// UpdateFAQ godoc
// @Summary      Edit a FAQ
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "FAQ ID"
// @Param        body body models.FAQRequest true "FAQ"
// @Success      200  {object}  models.FAQ
// @Router       /superadmin/faq/{id} [put]
func (h *SuperAdminController) UpdateFAQ(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body models.FAQRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	faq, err := h.svc.UpdateFAQ(c.Context(), id, body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "FAQ updated successfully", faq)
}

// SetFAQStatus godoc
// @Summary      Publish or unpublish a FAQ
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string true "FAQ ID"
// @Param        status query string true "publish | unpublish"
// @Success      200  {object}  models.FAQ
// @Router       /superadmin/faq-status/{id} [patch]
func (h *SuperAdminController) SetFAQStatus(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	faq, err := h.svc.SetFAQStatus(c.Context(), id, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "FAQ status updated", faq)
}

// DeleteFAQ godoc
// @Summary      Delete a FAQ
// @Tags         superadmin
// @Security     BearerAuth
// @Param        id path string true "FAQ ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /superadmin/faq/{id} [delete]
func (h *SuperAdminController) DeleteFAQ(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	if err := h.svc.DeleteFAQ(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "FAQ deleted successfully"})
}

// ListTutorials godoc
// @Summary      List tutorials
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        filter_by query string false "publish | unpublish | category name"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Items per page"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /superadmin/tutorial [get]
func (h *SuperAdminController) ListTutorials(c *fiber.Ctx) error {
	page, err := h.svc.ListTutorials(c.Context(), c.Query("filter_by"), pagination(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// CreateTutorial godoc
// @Summary      Create a tutorial
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.TutorialRequest true "Tutorial"
// @Success      201  {object}  models.Tutorial
// @Failure      422  {object}  models.ErrorResponse
// @Router       /superadmin/tutorial [post]
func (h *SuperAdminController) CreateTutorial(c *fiber.Ctx) error {
	var body models.TutorialRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	tut, err := h.svc.CreateTutorial(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Tutorial created successfully", tut)
}

// GetTutorial godoc
// @Summary      Get a tutorial
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tutorial ID"
// @Success      200  {object}  models.Tutorial
// @Router       /superadmin/tutorial/{id} [get]
func (h *SuperAdminController) GetTutorial(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	tut, err := h.svc.GetTutorial(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Tutorial retrieved successfully", tut)
}

// UpdateTutorial godoc
// @Summary      Edit a tutorial
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Tutorial ID"
// @Param        body body models.TutorialRequest true "Tutorial"
// @Success      200  {object}  models.Tutorial
// @Router       /superadmin/tutorial/{id} [put]
func (h *SuperAdminController) UpdateTutorial(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	var body models.TutorialRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	tut, err := h.svc.UpdateTutorial(c.Context(), id, body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Tutorial updated successfully", tut)
}

// SetTutorialStatus godoc
// @Summary      Publish or unpublish a tutorial
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  string true "Tutorial ID"
// @Param        status query string true "publish | unpublish"
// @Success      200  {object}  models.Tutorial
// @Router       /superadmin/tutorial-status/{id} [patch]
func (h *SuperAdminController) SetTutorialStatus(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	tut, err := h.svc.SetTutorialStatus(c.Context(), id, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Tutorial status updated", tut)
}

// DeleteTutorial godoc
// @Summary      Delete a tutorial
// @Tags         superadmin
// @Security     BearerAuth
// @Param        id path string true "Tutorial ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /superadmin/tutorial/{id} [delete]
func (h *SuperAdminController) DeleteTutorial(c *fiber.Ctx) error {
	id, valid, err := paramID(c, "id")
	if !valid {
		return err
	}
	if err := h.svc.DeleteTutorial(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tutorial deleted successfully"})
}

// ListUsers godoc
// @Summary      List users
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        subscription_type query string false "Subscription type"
// @Param        account_type      query string false "Account type"
// @Param        location          query string false "Location"
// @Param        email             query string false "Email contains"
// @Param        page              query int    false "Page number"
// @Param        page_size         query int    false "Items per page"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /superadmin/users [get]
func (h *SuperAdminController) ListUsers(c *fiber.Ctx) error {
	filter := models.UserFilter{
		SubscriptionType: c.Query("subscription_type"),
		AccountType:      c.Query("account_type"),
		Location:         c.Query("location"),
		Email:            c.Query("email"),
	}
	page, err := h.svc.ListUsers(c.Context(), filter, pagination(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// Overview godoc
// @Summary      Platform totals
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Overview
// @Router       /superadmin/overview [get]
func (h *SuperAdminController) Overview(c *fiber.Ctx) error {
	out, err := h.svc.Overview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Overview retrieved successfully", out)
}

// SurveyCreationDistribution godoc
// @Summary      Surveys created per day of a month
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        month query int false "1-12, default current month"
// @Param        year  query int false "default current year"
// @Success      200  {array}  superadmin.DailyCount
// @Router       /superadmin/survey-distribution [get]
func (h *SuperAdminController) SurveyCreationDistribution(c *fiber.Ctx) error {
	out, err := h.svc.SurveyCreationDistribution(c.Context(), c.QueryInt("month"), c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Distribution retrieved successfully", out)
}

// SurveyTypeDistribution godoc
// @Summary      AI versus manual surveys of a month
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        month query int false "1-12, default current month"
// @Param        year  query int false "default current year"
// @Success      200  {array}  superadmin.TypeCount
// @Router       /superadmin/survey-type-distribution [get]
func (h *SuperAdminController) SurveyTypeDistribution(c *fiber.Ctx) error {
	out, err := h.svc.SurveyTypeDistribution(c.Context(), c.QueryInt("month"), c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Distribution retrieved successfully", out)
}

// QueueStats godoc
// @Summary      Background job queue counters
// @Tags         superadmin
// @Produce      json
// @Security     BearerAuth
// @Param        queue query string false "Queue name" default(default)
// @Success      200  {object}  jobs.QueueStats
// @Failure      503  {object}  models.ErrorResponse
// @Router       /superadmin/jobs [get]
func (h *SuperAdminController) QueueStats(c *fiber.Ctx) error {
	if h.queue == nil {
		return utils.HandleError(c, fiber.StatusServiceUnavailable, "asynq client not initialized")
	}
	stats, err := h.queue.Stats(c.Query("queue", jobs.DefaultQueue))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Queue stats retrieved successfully", stats)
}
