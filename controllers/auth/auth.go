package authController

import (
	"bolt/config"
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	"bolt/utils"
	authValidator "bolt/validators/auth"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// swappable in tests
var sendOTPEmail = utils.SendOTPEmail

var errOTPAlreadySent = errors.New("otp already sent")

// isDuplicateKey recognizes unique-constraint violations from the
// postgres and sqlite drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func otpTTL() time.Duration {
	return time.Duration(config.AppConfig.OTPTTLMin) * time.Minute
}

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(reqData.Email)

	// Check if email already exists
	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if username already exists
	if err := db.Where("LOWER(username) = ?", strings.ToLower(reqData.Username)).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Email:    email,
		Username: strings.ToLower(reqData.Username),
		Password: string(hashedPassword),
		IsActive: true,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// A concurrent signup can slip between the checks above and
		// this insert; the constraint violation is still a conflict
		if isDuplicateKey(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email or username is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := database.Database.Db.Where("email = ?", strings.ToLower(reqData.Email)).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsActive {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account is deactivated!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	accessToken, err := middleware.GenerateJWT(&user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}
	refreshToken, err := middleware.GenerateRefreshJWT(&user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":    user,
		"access":  accessToken,
		"refresh": refreshToken,
	})
}

// Logout revokes the presented access token. The token stays revoked
// for the rest of its natural lifetime; the cleanup scheduler prunes
// it afterwards.
func Logout(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	tokenString, _ := c.Locals("token").(string)
	claims, err := middleware.VerifyJWT(tokenString)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid token!", nil)
	}

	entry := models.BlacklistedToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	// FirstOrCreate keeps revocation idempotent under retried logouts
	if err := database.Database.Db.Where("token = ?", tokenString).FirstOrCreate(&entry).Error; err != nil {
		log.Printf("Error blacklisting token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to logout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logout successful.", nil)
}

// ForgotPassword issues a password-reset OTP for the given email.
// A live code blocks reissue until it expires. The unique index on
// email makes concurrent requests race to a single stored code; the
// loser's insert trips the constraint and maps to the same 409.
func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(reqData.Email)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found with email : "+email, nil)
	}

	code := utils.GenerateOTP()

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.PasswordResetOTP
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			if !existing.IsExpired(otpTTL()) {
				return errOTPAlreadySent
			}
			if err := tx.Where("email = ?", email).Delete(&models.PasswordResetOTP{}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&models.PasswordResetOTP{Email: email, Code: code}).Error; err != nil {
			if isDuplicateKey(err) {
				return errOTPAlreadySent
			}
			return err
		}
		return nil
	})
	if errors.Is(err, errOTPAlreadySent) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "OTP already sent", nil)
	}
	if err != nil {
		log.Printf("Error creating OTP record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create OTP!", nil)
	}

	if err := sendOTPEmail(user.Username, email, code); err != nil {
		// A code nobody received must not block reissue until expiry
		db.Where("email = ?", email).Delete(&models.PasswordResetOTP{})
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP email!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your email.", nil)
}

// VerifyOTP checks the submitted code against the stored record.
func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(reqData.Email)

	var record models.PasswordResetOTP
	if err := db.Where("email = ?", email).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "OTP is not register for this email, please register first", nil)
	}

	if record.IsExpired(otpTTL()) {
		db.Delete(&record)
		return middleware.JsonResponse(c, fiber.StatusGone, false, "OTP has expired", nil)
	}

	// Exact match only; a mismatch keeps the record for retry
	if record.Code != reqData.OTP {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP", nil)
	}

	record.IsVerified = true
	if err := db.Save(&record).Error; err != nil {
		log.Printf("Error updating OTP status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update OTP status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", nil)
}

// ResetPassword applies the new password after a verified OTP check.
// Every OTP row for the email is removed afterwards so a stale
// verified record cannot authorize a second reset.
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	email := strings.ToLower(reqData.Email)

	var record models.PasswordResetOTP
	if err := db.Where("email = ?", email).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No OTP request found for this email", nil)
	}

	if !record.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusPreconditionFailed, false, "OTP is not verified for this email", nil)
	}

	if v := authValidator.ValidatePassword(reqData.NewPassword); v != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, v.Message, nil)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found with email : "+email, nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating user password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	if err := db.Where("email = ?", email).Delete(&models.PasswordResetOTP{}).Error; err != nil {
		// Cleanup finding no rows or failing is non-fatal for the reset
		log.Printf("Error deleting OTP records for %s: %v", email, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
