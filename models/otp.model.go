package models

import "time"

// PasswordResetOTP is a short-lived one-time code keyed by email.
// The unique index holds the one-record-per-email invariant even under
// concurrent requests; rows are hard-deleted so a purged code frees
// the index slot for reissue. Expired leftovers are purged on the next
// reset request or by the cleanup scheduler.
type PasswordResetOTP struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Code       string    `gorm:"size:6;not null" json:"code"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsExpired reports whether the code has outlived the given window.
func (o *PasswordResetOTP) IsExpired(ttl time.Duration) bool {
	return time.Now().After(o.CreatedAt.Add(ttl))
}
