package authRoutes

import (
	authController "bolt/controllers/auth"
	"bolt/middleware"
	authValidator "bolt/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/logout", middleware.RequireAuth, authController.Logout)

	// Password-reset flow lives at the root per the public API contract
	app.Post("/forgot-password", authValidator.ForgotPassword(), authController.ForgotPassword)
	app.Post("/verify-otp", authValidator.VerifyOTP(), authController.VerifyOTP)
	app.Post("/reset-password", authValidator.ResetPassword(), authController.ResetPassword)
}
