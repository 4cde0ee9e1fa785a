package shopController

import (
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	shopValidator "bolt/validators/shop"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductList returns products, paginated.
func ProductList(c *fiber.Ctx) error {
	page, ok := c.Locals("pagination").(*shopValidator.Pagination)
	if !ok {
		page = &shopValidator.Pagination{Page: 1, Limit: 10}
	}

	offset := (page.Page - 1) * page.Limit

	var products []models.Product
	var total int64

	db := database.Database.Db
	if err := db.Offset(offset).Limit(page.Limit).Find(&products).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch products!", nil)
	}
	db.Model(&models.Product{}).Count(&total)

	response := map[string]interface{}{
		"products": products,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product List.", response)
}

// GetProduct returns one product by id.
func GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	var product models.Product
	if err := database.Database.Db.First(&product, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product details.", product)
}

// CreateProduct adds a product. Staff only (enforced by the router).
func CreateProduct(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProduct").(*shopValidator.ProductRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	product := models.Product{
		Name:        strings.ToLower(reqData.Name),
		Description: strings.ToLower(reqData.Description),
		Price:       reqData.Price,
		Stock:       *reqData.Stock,
	}
	if reqData.CategoryID != "" {
		categoryID, err := uuid.Parse(reqData.CategoryID)
		if err == nil {
			product.CategoryID = categoryID
		}
	}

	if err := database.Database.Db.Create(&product).Error; err != nil {
		log.Printf("Error creating product: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Product created successfully.", product)
}

// UpdateProduct changes product fields.
func UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	reqData, ok := c.Locals("validatedProduct").(*shopValidator.ProductRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	product.Name = strings.ToLower(reqData.Name)
	product.Description = strings.ToLower(reqData.Description)
	product.Price = reqData.Price
	product.Stock = *reqData.Stock

	if err := db.Save(&product).Error; err != nil {
		log.Printf("Error updating product %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product updated successfully.", product)
}

// DeleteProduct removes a product.
func DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
	}

	db := database.Database.Db

	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found!", nil)
	}

	if err := db.Delete(&product).Error; err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete product!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Product deleted successfully.", nil)
}
