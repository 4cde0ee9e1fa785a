package middleware

import (
	"bolt/config"
	"bolt/database"
	"bolt/models"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims carried by every issued token.
type Claims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsStaff bool   `json:"isStaff"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a short-lived access token for the user
func GenerateJWT(user *models.User) (string, error) {
	ttl := time.Duration(config.AppConfig.AccessTokenTTLMin) * time.Minute
	return signToken(user, ttl)
}

// GenerateRefreshJWT generates a long-lived refresh token for the user
func GenerateRefreshJWT(user *models.User) (string, error) {
	ttl := time.Duration(config.AppConfig.RefreshTokenTTLDays) * 24 * time.Hour
	return signToken(user, ttl)
}

func signToken(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  user.ID.String(),
		Email:   user.Email,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// VerifyJWT decodes the token and checks signature, method and expiry.
// Malformed input returns an error, never panics.
func VerifyJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// AuthGate resolves the caller identity from the Authorization header.
// It runs on every request before any handler. A missing header, a token
// that fails verification or a blacklisted token all degrade to an
// anonymous request; the route-level guards decide whether anonymous
// access is acceptable.
func AuthGate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Next()
	}

	tokenString := authHeader[len("Bearer "):]

	claims, err := VerifyJWT(tokenString)
	if err != nil {
		return c.Next()
	}

	// A revoked token never authenticates, even while otherwise valid.
	// Only a definite record-not-found proves the token was not revoked;
	// a failing blacklist store also degrades to anonymous.
	err = database.Database.Db.Where("token = ?", tokenString).First(&models.BlacklistedToken{}).Error
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Next()
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return c.Next()
	}

	c.Locals("userId", userID)
	c.Locals("isStaff", claims.IsStaff)
	c.Locals("token", tokenString)

	return c.Next()
}

// RequireAuth rejects requests for which AuthGate resolved no identity
func RequireAuth(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uuid.UUID); !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}
	return c.Next()
}

// CallerID returns the authenticated caller's id. The boolean is false
// on anonymous requests.
func CallerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("userId").(uuid.UUID)
	return id, ok
}

// CallerIsStaff reports whether the authenticated caller is staff.
func CallerIsStaff(c *fiber.Ctx) bool {
	isStaff, _ := c.Locals("isStaff").(bool)
	return isStaff
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
