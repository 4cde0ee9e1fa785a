package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserHasAccess implements the staff-or-owner rule applied before any
// mutating or identity-revealing operation on a per-user resource.
func UserHasAccess(callerID uuid.UUID, callerIsStaff bool, targetID uuid.UUID) bool {
	if callerIsStaff {
		return true
	}
	return callerID == targetID
}

// CheckUserAccess denies the request unless the caller is staff or owns
// the target resource. Returns a response when access was denied, nil
// when the handler may proceed.
func CheckUserAccess(c *fiber.Ctx, targetID uuid.UUID) error {
	callerID, ok := CallerID(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}
	if !UserHasAccess(callerID, CallerIsStaff(c), targetID) {
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to perform this action!", nil)
	}
	return nil
}

// RequireStaff returns a middleware that rejects non-staff callers
func RequireStaff(c *fiber.Ctx) error {
	if _, ok := CallerID(c); !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}
	if !CallerIsStaff(c) {
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to perform this action!", nil)
	}
	return c.Next()
}
