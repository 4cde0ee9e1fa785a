package shopController

import (
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	"bolt/utils"
	shopValidator "bolt/validators/shop"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// swappable in tests
var sendOrderStatusEmail = utils.SendOrderStatusEmail

// CreateOrder places an order for the caller. Every product must have
// stock left; stock is decremented and the total computed inside one
// transaction so a failed order leaves no partial state.
func CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	reqData, ok := c.Locals("validatedOrder").(*shopValidator.OrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.Order
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

		order = models.Order{
			UserID:     userID,
			Status:     models.OrderPending,
			TotalPrice: total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range products {
			if err := tx.Model(&products[i]).Update("stock", products[i].Stock-1).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&order).Association("Products").Append(products); err != nil {
			return err
		}
		order.Products = products
		return nil
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more products not found!", nil)
	}
	if outOfStock != "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Product "+outOfStock+" is out of stock.", nil)
	}
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order, please try again later", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order placed successfully.", order)
}

// OrderList returns the caller's orders, or every order for staff.
func OrderList(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	db := database.Database.Db.Preload("Products")
	if !middleware.CallerIsStaff(c) {
		db = db.Where("user_id = ?", userID)
	}

	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order List.", orders)
}

// GetOrder returns one order. Staff or owner only.
func GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
	}

	var order models.Order
	if err := database.Database.Db.Preload("Products").First(&order, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if resp := middleware.CheckUserAccess(c, order.UserID); resp != nil {
		return resp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order details.", order)
}

// UpdateOrderStatus changes an order's status and notifies the owner
// by email. Staff only (enforced by the router).
func UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
	}

	reqData, ok := c.Locals("validatedOrderStatus").(*shopValidator.OrderStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if err := db.Model(&order).Update("status", reqData.Status).Error; err != nil {
		log.Printf("Error updating order %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update order!", nil)
	}

	var owner models.User
	if err := db.First(&owner, "id = ?", order.UserID).Error; err == nil {
		go sendOrderStatusEmail(order.ID.String(), owner.Username, reqData.Status, owner.Email)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order updated successfully.", order)
}

// DeleteOrder removes an order. Staff or owner only.
func DeleteOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
	}

	db := database.Database.Db

	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if resp := middleware.CheckUserAccess(c, order.UserID); resp != nil {
		return resp
	}

	if err := db.Select("Products").Delete(&order).Error; err != nil {
		log.Printf("Error deleting order %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order deleted successfully.", nil)
}
