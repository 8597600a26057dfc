package routes

import (
	"PollSensei-Backend/src/controllers"
	"PollSensei-Backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes register / verify / login / logout
func authRoutes(app *fiber.App, h *controllers.AuthController) {
	auth := app.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/resend-otp", h.ResendOTP)
	auth.Post("/login", h.Login) // 🔐 login
	auth.Post("/logout", middleware.AuthJWT, h.Logout)
	auth.Get("/me", middleware.AuthJWT, h.Me)
}
