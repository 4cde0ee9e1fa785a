package userRoutes

import (
	userController "bolt/controllers/userControllers"
	"bolt/middleware"
	authValidator "bolt/validators/auth"
	shopValidator "bolt/validators/shop"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/users", shopValidator.Paginate(), middleware.RequireStaff, userController.UserList)

	userGroup := app.Group("/user", middleware.RequireAuth)
	userGroup.Get("/:id", userController.GetUser)
	userGroup.Put("/:id", authValidator.UpdateUser(), userController.UpdateUser)
	userGroup.Delete("/:id", userController.DeleteUser)
}
