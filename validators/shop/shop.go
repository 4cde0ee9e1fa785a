package shopValidator

import (
	"bolt/middleware"
	"bolt/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CategoryRequest is the validated category payload.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=500"`
}

// ProductRequest is the validated product payload.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"required,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       *int    `json:"stock" validate:"required,min=0"`
	CategoryID  string  `json:"category_id" validate:"omitempty,uuid4"`
}

// OrderRequest is the validated order payload.
type OrderRequest struct {
	Products []string `json:"products" validate:"required,min=1,dive,uuid4"`
}

// OrderStatusRequest is the validated status-update payload.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CartRequest is the validated cart payload.
type CartRequest struct {
	Products []string `json:"products" validate:"required,min=1,dive,uuid4"`
}

// Pagination holds the validated page/limit query parameters.
type Pagination struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Category validator middleware
func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Category name is required and must be at most 255 characters!",
			})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// Product validator middleware
func Product() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProductRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					switch fe.Field() {
					case "Name":
						errors["name"] = "Product name is required and must be at most 255 characters!"
					case "Description":
						errors["description"] = "Product description is required and must be at most 500 characters!"
					case "Price":
						errors["price"] = "Price must be greater than zero!"
					case "Stock":
						errors["stock"] = "Stock is required and must not be negative!"
					case "CategoryID":
						errors["category_id"] = "Invalid category id!"
					}
				}
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProduct", reqData)
		return c.Next()
	}
}

// Order validator middleware
func Order() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"products": "At least one product must be selected!",
			})
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

// OrderStatus validator middleware
func OrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(OrderStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		valid := false
		for _, s := range models.OrderStatuses {
			if reqData.Status == s {
				valid = true
				break
			}
		}
		if !valid {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of PENDING, SHIPPED, DELIVERED, CANCELLED!",
			})
		}

		c.Locals("validatedOrderStatus", reqData)
		return c.Next()
	}
}

// Cart validator middleware
func Cart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CartRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"products": "At least one product must be selected!",
			})
		}

		c.Locals("validatedCart", reqData)
		return c.Next()
	}
}

// Paginate parses and bounds page/limit query parameters
func Paginate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(Pagination)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 10
		}

		c.Locals("pagination", reqData)
		return c.Next()
	}
}
