package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHasAccess(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		isStaff bool
		target  uuid.UUID
		want    bool
	}{
		{"owner", owner, false, owner, true},
		{"staff on own resource", owner, true, owner, true},
		{"staff on foreign resource", other, true, owner, true},
		{"non-staff on foreign resource", other, false, owner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserHasAccess(tt.caller, tt.isStaff, tt.target))
		})
	}
}

func TestRequireStaff(t *testing.T) {
	setupTest(t)

	app := fiber.New()
	app.Use(AuthGate)
	app.Get("/admin", RequireStaff, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	hit := func(authHeader string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// Anonymous
	assert.Equal(t, http.StatusUnauthorized, hit(""))

	// Authenticated non-staff
	user := testUser()
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, hit("Bearer "+token))

	// Staff
	user.IsStaff = true
	staffToken, err := GenerateJWT(user)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, hit("Bearer "+staffToken))
}
