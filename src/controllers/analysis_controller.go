package controllers

import (
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AnalysisController struct {
	svc *analysis.Service
}

func NewAnalysisController(svc *analysis.Service) *AnalysisController {
	return &AnalysisController{svc: svc}
}

// GetTestLibrary godoc
// @Summary      Statistical tests grouped by category
// @Tags         analysis
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]string
// @Router       /analysis/library [get]
func (h *AnalysisController) GetTestLibrary(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "Test library retrieved successfully", h.svc.Library())
}

// GetVariables godoc
// @Summary      Variables extracted from the survey questions
// @Tags         analysis
// @Produce      json
// @Security     BearerAuth
// @Param        survey_id path string true "Survey ID"
// @Success      200  {array}  models.SurveyVariable
// @Router       /analysis/variables/{survey_id} [get]
func (h *AnalysisController) GetVariables(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "survey_id")
	if !valid {
		return err
	}
	vars, err := h.svc.Variables(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Variables retrieved successfully", vars)
}

// GetBoard godoc
// @Summary      Empty assignment board for a survey
// @Tags         analysis
// @Produce      json
// @Security     BearerAuth
// @Param        survey_id path string true "Survey ID"
// @Success      200  {object}  analysis.AssignmentBoard
// @Router       /analysis/board/{survey_id} [get]
func (h *AnalysisController) GetBoard(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "survey_id")
	if !valid {
		return err
	}
	board, err := h.svc.Board(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Board retrieved successfully", board)
}

// RunAnalysis godoc
// @Summary      Run the selected tests
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.TestLibraryFormatted true "Selected tests and variables"
// @Success      202  {object}  models.AnalysisReport
// @Failure      400  {object}  models.ErrorResponse
// @Router       /analysis/run [post]
func (h *AnalysisController) RunAnalysis(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	var body models.TestLibraryFormatted
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	report, err := h.svc.Run(c.Context(), userID, body)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusAccepted
	if report.Status != models.AnalysisPending {
		status = fiber.StatusOK
	}
	return ok(c, status, "Analysis "+report.Status, report)
}

// GetReport godoc
// @Summary      Latest analysis report of a survey
// @Tags         analysis
// @Produce      json
// @Security     BearerAuth
// @Param        survey_id path string true "Survey ID"
// @Success      200  {object}  models.AnalysisReport
// @Failure      404  {object}  models.ErrorResponse
// @Router       /analysis/report/{survey_id} [get]
func (h *AnalysisController) GetReport(c *fiber.Ctx) error {
	userID, found, err := currentUser(c)
	if !found {
		return err
	}
	id, valid, err := paramID(c, "survey_id")
	if !valid {
		return err
	}
	report, err := h.svc.Report(c.Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Report retrieved successfully", report)
}
