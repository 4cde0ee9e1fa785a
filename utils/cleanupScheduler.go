package utils

import (
	"bolt/config"
	"bolt/database"
	"bolt/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CleanupExpiredBlacklistedTokens deletes blacklist rows whose token
// has passed its natural expiry. An expired token already fails
// verification, so keeping the row only grows the table.
func CleanupExpiredBlacklistedTokens() {
	result := database.Database.Db.
		Where("expires_at < ?", time.Now()).
		Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		log.Printf("[CLEANUP] Failed to prune blacklisted tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP] Pruned %d expired blacklisted tokens", result.RowsAffected)
	}
}

// CleanupExpiredOTPs deletes password-reset codes that outlived their
// window without completing a reset.
func CleanupExpiredOTPs() {
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.OTPTTLMin) * time.Minute)
	result := database.Database.Db.
		Where("created_at < ?", cutoff).
		Delete(&models.PasswordResetOTP{})
	if result.Error != nil {
		log.Printf("[CLEANUP] Failed to prune expired OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CLEANUP] Pruned %d expired OTP records", result.RowsAffected)
	}
}

// InitializeCleanupScheduler sets up the daily store maintenance run
func InitializeCleanupScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP] Running daily store cleanup...")
		CleanupExpiredBlacklistedTokens()
		CleanupExpiredOTPs()
	})

	c.Start()
	log.Println("[CLEANUP] Cleanup scheduler started - runs daily at 03:00")
	return c
}
