package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	AccessTokenTTLMin   int // access token lifetime in minutes
	RefreshTokenTTLDays int // refresh token lifetime in days
	OTPTTLMin           int // password-reset OTP lifetime in minutes

	EmailProvider string // "smtp" or "sendgrid"
	EmailSender   string
	Password      string // SMTP App Password
	SendGridKey   string

	RedisAddr     string // empty disables the sensor stream consumer
	RedisPassword string
	SensorStream  string
	SensorGroup   string

	LogDir     string
	ArchiveDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AccessTokenTTLMin:   getEnvInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTokenTTLDays: getEnvInt("REFRESH_TOKEN_TTL_DAYS", 120),
		OTPTTLMin:           getEnvInt("OTP_TTL_MIN", 10),

		EmailProvider: getEnv("EMAIL_PROVIDER", "smtp"),
		EmailSender:   getEnv("EMAIL_SENDER", "no-reply@teambolt.com"),
		Password:      getEnv("PASSWORD", "defaultSecret"),
		SendGridKey:   getEnv("SENDGRID_API_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SensorStream:  getEnv("SENSOR_STREAM", "iot:sensor:readings"),
		SensorGroup:   getEnv("SENSOR_GROUP", "sensor-group"),

		LogDir:     getEnv("LOG_DIR", "./logs"),
		ArchiveDir: getEnv("ARCHIVE_DIR", "./archive"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
