package models

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistedToken is a revoked bearer token. Presence here means the
// token must never authenticate again, even while cryptographically
// valid. Rows may be pruned once ExpiresAt has passed.
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex:idx_blacklisted_tokens_token,length:255;not null" json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
