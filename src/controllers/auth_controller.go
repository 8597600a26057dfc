package controllers

import (
	"PollSensei-Backend/src/middleware"
	"PollSensei-Backend/src/models"
	"PollSensei-Backend/src/services/auth"
	"PollSensei-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	svc *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// ResendOTPRequest body ของ auth/resend-otp
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Register godoc
// @Summary      Create an account and send a verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.RegisterRequest true "Account"
// @Success      201  {object}  models.User
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthController) Register(c *fiber.Ctx) error {
	var body models.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	user, err := h.svc.Register(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Registration successful, check your email for the code", user)
}

// VerifyOTP godoc
// @Summary      Confirm the emailed code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.VerifyOTPRequest true "Email and code"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var body models.VerifyOTPRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	user, err := h.svc.VerifyOTP(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Email verified", user)
}

// ResendOTP godoc
// @Summary      Send a new verification code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body ResendOTPRequest true "Email"
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/resend-otp [post]
func (h *AuthController) ResendOTP(c *fiber.Ctx) error {
	var body ResendOTPRequest
	if handled, err := utils.ParseAndValidate(c, &body); handled {
		return err
	}
	if err := h.svc.ResendOTP(c.Context(), body.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "A new code has been sent"})
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  auth.LoginResult
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthController) Login(c *fiber.Ctx) error {
	var body models.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	result, err := h.svc.Login(c.Context(), body)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")
	return ok(c, fiber.StatusOK, "Login successful", result)
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if err := h.svc.Logout(middleware.Token(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Router       /auth/me [get]
func (h *AuthController) Me(c *fiber.Ctx) error {
	user, err := h.svc.Me(c.Context(), middleware.Claims(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Profile retrieved successfully", user)
}
