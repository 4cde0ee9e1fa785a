package main

import (
	"bolt/config"
	"bolt/database"
	"bolt/middleware"
	authRoutes "bolt/routers/authRoutes"
	shopRoutes "bolt/routers/shopRoutes"
	userRoutes "bolt/routers/userRoutes"
	"bolt/stream"
	"bolt/utils"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Access log goes to a file so the archiver can rotate it away
	accessLog := openAccessLog(config.AppConfig.LogDir)
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		Output: accessLog,
	}))

	app.Use(middleware.SecurityHeaders)
	app.Use(middleware.AuthGate)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	shopRoutes.SetupShopRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Backend Bolt is running", nil)
	})

	utils.InitializeLogArchiver(config.AppConfig.LogDir, config.AppConfig.ArchiveDir)
	utils.InitializeCleanupScheduler()

	if config.AppConfig.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
		})
		consumer := stream.NewConsumer(rdb, database.Database.Db, config.AppConfig.SensorStream, config.AppConfig.SensorGroup)
		go func() {
			if err := consumer.Run(context.Background()); err != nil {
				log.Printf("Sensor consumer stopped: %v", err)
			}
		}()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

func openAccessLog(logDir string) *os.File {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("Failed to create log dir, access log goes to stderr: %v", err)
		return os.Stderr
	}
	f, err := os.OpenFile(filepath.Join(logDir, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Failed to open access log, falling back to stderr: %v", err)
		return os.Stderr
	}
	return f
}
