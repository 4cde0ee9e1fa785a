package userController

import (
	"bolt/config"
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	authValidator "bolt/validators/auth"
	shopValidator "bolt/validators/shop"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func targetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// GetUser returns the profile of the given user. Staff or owner only.
func GetUser(c *fiber.Ctx) error {
	id, err := targetUserID(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if resp := middleware.CheckUserAccess(c, id); resp != nil {
		return resp
	}

	var user models.User
	if err := database.Database.Db.First(&user, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found with id : "+id.String(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User details.", user)
}

// UpdateUser changes username and/or password. Staff or owner only.
func UpdateUser(c *fiber.Ctx) error {
	id, err := targetUserID(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if resp := middleware.CheckUserAccess(c, id); resp != nil {
		return resp
	}

	reqData, ok := c.Locals("validatedUpdateUser").(*authValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found with id : "+id.String(), nil)
	}

	updates := map[string]interface{}{}
	if reqData.Username != "" {
		var existing models.User
		if err := db.Where("LOWER(username) = ? AND id <> ?", strings.ToLower(reqData.Username), id).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
		}
		updates["username"] = strings.ToLower(reqData.Username)
	}
	if reqData.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
		}
		updates["password"] = string(hashedPassword)
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Error updating user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// DeleteUser removes the user record. Staff or owner only.
func DeleteUser(c *fiber.Ctx) error {
	id, err := targetUserID(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	if resp := middleware.CheckUserAccess(c, id); resp != nil {
		return resp
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found with id : "+id.String(), nil)
	}

	if err := db.Delete(&user).Error; err != nil {
		log.Printf("Error deleting user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User delete successfully", nil)
}

// UserList returns every user, paginated. Staff only.
func UserList(c *fiber.Ctx) error {
	page, ok := c.Locals("pagination").(*shopValidator.Pagination)
	if !ok {
		page = &shopValidator.Pagination{Page: 1, Limit: 10}
	}

	offset := (page.Page - 1) * page.Limit

	var users []models.User
	var total int64

	db := database.Database.Db
	if err := db.Offset(offset).Limit(page.Limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}
	db.Model(&models.User{}).Count(&total)

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page.Page,
			"limit": page.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", response)
}
