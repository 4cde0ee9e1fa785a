package shopRoutes

import (
	shopController "bolt/controllers/shop"
	"bolt/middleware"
	shopValidator "bolt/validators/shop"

	"github.com/gofiber/fiber/v2"
)

func SetupShopRoutes(app *fiber.App) {
	// Categories: reads are public, mutation is staff only
	app.Get("/category", shopController.CategoryList)
	app.Post("/category", shopValidator.Category(), middleware.RequireStaff, shopController.CreateCategory)
	app.Get("/category/:id", shopController.GetCategory)
	app.Put("/category/:id", shopValidator.Category(), middleware.RequireStaff, shopController.UpdateCategory)
	app.Delete("/category/:id", middleware.RequireStaff, shopController.DeleteCategory)

	// Products: reads are public, mutation is staff only
	app.Get("/product", shopValidator.Paginate(), shopController.ProductList)
	app.Post("/product", shopValidator.Product(), middleware.RequireStaff, shopController.CreateProduct)
	app.Get("/product/:id", shopController.GetProduct)
	app.Put("/product/:id", shopValidator.Product(), middleware.RequireStaff, shopController.UpdateProduct)
	app.Delete("/product/:id", middleware.RequireStaff, shopController.DeleteProduct)

	// Orders
	app.Get("/order", middleware.RequireAuth, shopController.OrderList)
	app.Post("/order", shopValidator.Order(), middleware.RequireAuth, shopController.CreateOrder)
	app.Get("/order/:id", middleware.RequireAuth, shopController.GetOrder)
	app.Put("/order/:id", shopValidator.OrderStatus(), middleware.RequireStaff, shopController.UpdateOrderStatus)
	app.Delete("/order/:id", middleware.RequireAuth, shopController.DeleteOrder)

	// Carts
	app.Get("/cart", middleware.RequireAuth, shopController.CartList)
	app.Post("/cart", shopValidator.Cart(), middleware.RequireAuth, shopController.CreateCart)
	app.Get("/cart/:id", middleware.RequireAuth, shopController.GetCart)
	app.Delete("/cart/:id", middleware.RequireAuth, shopController.DeleteCart)
}
