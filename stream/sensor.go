package stream

import (
	"bolt/models"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultBatchSize = 1000

// Reading is one IoT sensor measurement on the wire.
type Reading struct {
	DeviceID    string  `json:"device_id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Timestamp   float64 `json:"timestamp"`
}

// Consumer drains sensor readings from a Redis Stream and persists
// them in batches. Messages are acknowledged only after the batch has
// been written, so a crash replays unsaved readings to the group.
type Consumer struct {
	rdb       *redis.Client
	db        *gorm.DB
	stream    string
	group     string
	name      string
	batchSize int
	block     time.Duration
}

// NewConsumer creates a consumer bound to the given stream and group.
func NewConsumer(rdb *redis.Client, db *gorm.DB, streamName, group string) *Consumer {
	return &Consumer{
		rdb:       rdb,
		db:        db,
		stream:    streamName,
		group:     group,
		name:      "sensor-consumer-1",
		batchSize: defaultBatchSize,
		block:     5 * time.Second,
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.rdb.XGroupCreateMkStream(ctx, c.stream, c.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create consumer group: %w", err)
	}
	return nil
}

// Run consumes until the context is cancelled. Deliveries that were
// read but never acked, by a previous run or by a failed persist, are
// replayed from the pending list before new messages are taken.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	log.Printf("[SENSOR-CONSUMER] Consuming stream %s as group %s", c.stream, c.group)

	if err := c.drainPending(ctx); err != nil {
		log.Printf("[SENSOR-CONSUMER] Pending replay failed: %v", err)
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{c.stream, ">"},
			Count:    int64(c.batchSize),
			Block:    c.block,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[SENSOR-CONSUMER] Read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, s := range streams {
			if err := c.persistBatch(ctx, s.Messages); err != nil {
				// The batch stays on the pending list; retry it before
				// taking new messages
				log.Printf("[SENSOR-CONSUMER] Persist failed: %v", err)
				time.Sleep(time.Second)
				if err := c.drainPending(ctx); err != nil {
					log.Printf("[SENSOR-CONSUMER] Pending replay failed: %v", err)
				}
			}
		}
	}
}

// drainPending persists and acks this consumer's unacknowledged
// deliveries, reading from id 0 until the pending list is empty.
func (c *Consumer) drainPending(ctx context.Context) error {
	for {
		streams, err := c.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.name,
			Streams:  []string{c.stream, "0"},
			Count:    int64(c.batchSize),
		}).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}

		total := 0
		for _, s := range streams {
			total += len(s.Messages)
			if len(s.Messages) == 0 {
				continue
			}
			if err := c.persistBatch(ctx, s.Messages); err != nil {
				return err
			}
		}
		if total == 0 {
			return nil
		}
	}
}

// persistBatch writes one XReadGroup result to the database and acks
// the saved messages.
func (c *Consumer) persistBatch(ctx context.Context, messages []redis.XMessage) error {
	if len(messages) == 0 {
		return nil
	}

	records := make([]models.SensorData, 0, len(messages))
	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		record, err := parseReading(msg.Values)
		if err != nil {
			// Malformed messages are acked so they do not wedge the group
			log.Printf("[SENSOR-CONSUMER] Dropping malformed message %s: %v", msg.ID, err)
			ids = append(ids, msg.ID)
			continue
		}
		records = append(records, record)
		ids = append(ids, msg.ID)
	}

	if len(records) > 0 {
		if err := c.db.CreateInBatches(records, c.batchSize).Error; err != nil {
			return fmt.Errorf("insert readings: %w", err)
		}
	}

	if err := c.rdb.XAck(ctx, c.stream, c.group, ids...).Err(); err != nil {
		return fmt.Errorf("ack messages: %w", err)
	}
	return nil
}

func parseReading(values map[string]interface{}) (models.SensorData, error) {
	deviceID, _ := values["device_id"].(string)
	if deviceID == "" {
		return models.SensorData{}, fmt.Errorf("missing device_id")
	}

	temperature, err := floatField(values, "temperature")
	if err != nil {
		return models.SensorData{}, err
	}
	humidity, err := floatField(values, "humidity")
	if err != nil {
		return models.SensorData{}, err
	}
	timestamp, err := floatField(values, "timestamp")
	if err != nil {
		return models.SensorData{}, err
	}

	return models.SensorData{
		DeviceID:    deviceID,
		Temperature: temperature,
		Humidity:    humidity,
		Timestamp:   timestamp,
	}, nil
}

func floatField(values map[string]interface{}, key string) (float64, error) {
	raw, ok := values[key].(string)
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

// PublishReading appends one reading to the stream.
func PublishReading(ctx context.Context, rdb *redis.Client, streamName string, r Reading) error {
	return rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"device_id":   r.DeviceID,
			"temperature": strconv.FormatFloat(r.Temperature, 'f', 2, 64),
			"humidity":    strconv.FormatFloat(r.Humidity, 'f', 2, 64),
			"timestamp":   strconv.FormatFloat(r.Timestamp, 'f', 3, 64),
		},
	}).Err()
}
