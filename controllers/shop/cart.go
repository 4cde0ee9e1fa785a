package shopController

import (
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	shopValidator "bolt/validators/shop"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartList returns the caller's carts.
func CartList(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	var carts []models.Cart
	if err := database.Database.Db.Preload("Products").Where("user_id = ?", userID).Find(&carts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch carts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart List.", carts)
}

// CreateCart stores a cart with the selected products and total.
func CreateCart(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	reqData, ok := c.Locals("validatedCart").(*shopValidator.CartRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var cart models.Cart
	outOfStock := ""
	err := db.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("id IN ?", reqData.Products).Find(&products).Error; err != nil {
			return err
		}
		if len(products) != len(reqData.Products) {
			return gorm.ErrRecordNotFound
		}

		total := 0.0
		for i := range products {
			if products[i].Stock <= 0 {
				outOfStock = products[i].Name
				return errors.New("out of stock")
			}
			total += products[i].Price
		}

		cart = models.Cart{
			UserID:     userID,
			TotalPrice: total,
		}
		if err := tx.Create(&cart).Error; err != nil {
			return err
		}
		if err := tx.Model(&cart).Association("Products").Append(products); err != nil {
			return err
		}
		cart.Products = products
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more products not found!", nil)
	}
	if outOfStock != "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Product "+outOfStock+" is out of stock.", nil)
	}
	if err != nil {
		log.Printf("Error creating cart: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create cart, please try again later", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Cart created successfully.", cart)
}

// GetCart returns one cart. Staff or owner only.
func GetCart(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid cart id!", nil)
	}

	var cart models.Cart
	if err := database.Database.Db.Preload("Products").First(&cart, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart not found!", nil)
	}

	if resp := middleware.CheckUserAccess(c, cart.UserID); resp != nil {
		return resp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart details.", cart)
}

// DeleteCart removes a cart. Staff or owner only.
func DeleteCart(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid cart id!", nil)
	}

	db := database.Database.Db

	var cart models.Cart
	if err := db.First(&cart, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart not found!", nil)
	}

	if resp := middleware.CheckUserAccess(c, cart.UserID); resp != nil {
		return resp
	}

	if err := db.Select("Products").Delete(&cart).Error; err != nil {
		log.Printf("Error deleting cart %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart deleted successfully.", nil)
}
