package controllers

import (
	"errors"
	"log"
	"strings"

	"PollSensei-Backend/src/middleware"
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/ai"
	"PollSensei-Backend/src/services/analysis"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/services/engine"
	"PollSensei-Backend/src/services/responses"
	"PollSensei-Backend/src/services/superadmin"
	"PollSensei-Backend/src/services/surveys"
	"PollSensei-Backend/src/services/users"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusFor แปลง sentinel error ของ service เป็น HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, surveys.ErrSurveyNotFound),
		errors.Is(err, surveys.ErrNotPublished),
		errors.Is(err, responses.ErrResponseNotFound),
		errors.Is(err, responses.ErrTranscriptionNotFound),
		errors.Is(err, analysis.ErrReportNotFound),
		errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, superadmin.ErrFAQNotFound),
		errors.Is(err, superadmin.ErrTutorialNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, surveys.ErrForbidden),
		errors.Is(err, surveys.ErrSurveyClosed),
		errors.Is(err, auth.ErrNotVerified):
		return fiber.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, auth.ErrAlreadyVerified):
		return fiber.StatusConflict
	case errors.Is(err, surveys.ErrInvalidStatus),
		errors.Is(err, surveys.ErrSectionOutOfRange),
		errors.Is(err, surveys.ErrQuestionOutOfRange),
		errors.Is(err, surveys.ErrIndexOutOfRange),
		errors.Is(err, responses.ErrInvalidID),
		errors.Is(err, responses.ErrUnsupportedFormat),
		errors.Is(err, analysis.ErrInvalidID),
		errors.Is(err, analysis.ErrNoVariables),
		errors.Is(err, superadmin.ErrInvalidContentStatus),
		errors.Is(err, superadmin.ErrInvalidPeriod),
		errors.Is(err, utils.ErrOTPMismatch):
		return fiber.StatusBadRequest
	case errors.Is(err, engine.ErrEngineUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, ai.ErrChatUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError ตอบ error ในรูป ErrorResponse (validation → 422 พร้อม errors[])
func respondError(c *fiber.Ctx, err error) error {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		return utils.HandleValidationError(c, verr.Fields)
	}
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		return utils.HandleError(c, status, "Internal server error")
	}
	return utils.HandleError(c, status, err.Error())
}

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// paramID อ่าน ObjectID จาก path param; ตอบ 400 เองถ้าไม่ถูกต้อง
func paramID(c *fiber.Ctx, name string) (primitive.ObjectID, bool, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, false, utils.HandleError(c, fiber.StatusBadRequest, "Invalid "+name+" format")
	}
	return id, true, nil
}

// currentUser userId จาก token (route ต้องผ่าน AuthJWT แล้ว)
func currentUser(c *fiber.Ctx) (primitive.ObjectID, bool, error) {
	id, found := middleware.UserID(c)
	if !found {
		return primitive.NilObjectID, false, utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return id, true, nil
}

func pagination(c *fiber.Ctx) models.PaginationParams {
	p := models.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", models.DefaultPagination().PageSize),
	}
	p.Normalize()
	return p
}

// splitList รองรับทั้ง ?countries=TH,US และ ?countries=TH&countries=US
func splitList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
