package main

import (
	"bolt/config"
	"bolt/stream"
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// Emits synthetic IoT readings onto the sensor stream for load and
// integration testing of the consumer.
func main() {
	config.LoadConfig()

	if config.AppConfig.RedisAddr == "" {
		log.Fatal("REDIS_ADDR must be set to run the sensor producer")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
	})

	ctx := context.Background()
	count := 100000

	for i := 0; i < count; i++ {
		reading := stream.Reading{
			DeviceID:    fmt.Sprintf("sensor_%d", i%10),
			Temperature: 20.0 + rand.Float64()*20.0,
			Humidity:    30.0 + rand.Float64()*40.0,
			Timestamp:   float64(time.Now().UnixNano()) / 1e9,
		}
		if err := stream.PublishReading(ctx, rdb, config.AppConfig.SensorStream, reading); err != nil {
			log.Fatalf("Failed to publish reading: %v", err)
		}
		// slight delay to simulate real flow
		time.Sleep(10 * time.Millisecond)
	}

	log.Printf("Published %d readings to %s", count, config.AppConfig.SensorStream)
}
