// error_utils.go
package utils

import (
	"PollSensei-Backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationError ส่ง 422 พร้อม errors[] (frontend จะต่อ msg เป็นข้อความเดียว)
func HandleValidationError(c *fiber.Ctx, errs []models.FieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
		Status:  fiber.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// ParseAndValidate แปลง body แล้วตรวจด้วย validator; คืน handled=true ถ้าตอบ error ไปแล้ว
func ParseAndValidate(c *fiber.Ctx, dst interface{}) (handled bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return true, HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if errs := ValidateStruct(dst); len(errs) > 0 {
		return true, HandleValidationError(c, errs)
	}
	return false, nil
}
