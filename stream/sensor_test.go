package stream

import (
	"bolt/database"
	"bolt/models"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStream(t *testing.T) (*redis.Client, *gorm.DB) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return rdb, db
}

func readGroup(t *testing.T, c *Consumer) []redis.XMessage {
	t.Helper()
	streams, err := c.rdb.XReadGroup(context.Background(), &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.name,
		Streams:  []string{c.stream, ">"},
		Count:    int64(c.batchSize),
		Block:    -1,
	}).Result()
	if err == redis.Nil {
		return nil
	}
	require.NoError(t, err)
	require.Len(t, streams, 1)
	return streams[0].Messages
}

func TestEnsureGroupIsIdempotent(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")

	ctx := context.Background()
	require.NoError(t, c.ensureGroup(ctx))
	require.NoError(t, c.ensureGroup(ctx))
}

func TestPublishAndPersistBatch(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")

	ctx := context.Background()
	require.NoError(t, c.ensureGroup(ctx))

	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_1", Temperature: 21.5, Humidity: 44.2, Timestamp: 1756400000.123,
	}))
	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_2", Temperature: -3.25, Humidity: 80, Timestamp: 1756400001.5,
	}))

	messages := readGroup(t, c)
	require.Len(t, messages, 2)
	require.NoError(t, c.persistBatch(ctx, messages))

	var records []models.SensorData
	require.NoError(t, db.Order("device_id").Find(&records).Error)
	require.Len(t, records, 2)
	assert.Equal(t, "sensor_1", records[0].DeviceID)
	assert.InDelta(t, 21.5, records[0].Temperature, 0.001)
	assert.InDelta(t, 44.2, records[0].Humidity, 0.001)
	assert.Equal(t, "sensor_2", records[1].DeviceID)

	// Everything was acked, so the group has nothing pending
	pending, err := rdb.XPending(ctx, c.stream, c.group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestPersistBatchDropsMalformedMessages(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")

	ctx := context.Background()
	require.NoError(t, c.ensureGroup(ctx))

	require.NoError(t, rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: c.stream,
		Values: map[string]interface{}{"device_id": "sensor_9", "temperature": "not-a-number"},
	}).Err())
	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_3", Temperature: 19, Humidity: 55, Timestamp: 1756400002,
	}))

	messages := readGroup(t, c)
	require.Len(t, messages, 2)
	require.NoError(t, c.persistBatch(ctx, messages))

	// Only the well-formed reading lands, but both messages are acked
	var records []models.SensorData
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "sensor_3", records[0].DeviceID)

	pending, err := rdb.XPending(ctx, c.stream, c.group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestDrainPendingReplaysUnackedDeliveries(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")

	ctx := context.Background()
	require.NoError(t, c.ensureGroup(ctx))

	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_4", Temperature: 22, Humidity: 50, Timestamp: 1756400003,
	}))
	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_5", Temperature: 23, Humidity: 51, Timestamp: 1756400004,
	}))

	// Read without acking, as a consumer that died before persisting
	messages := readGroup(t, c)
	require.Len(t, messages, 2)

	var records []models.SensorData
	require.NoError(t, db.Find(&records).Error)
	require.Empty(t, records)

	// A fresh start must replay the pending deliveries, not lose them
	require.NoError(t, c.drainPending(ctx))

	require.NoError(t, db.Find(&records).Error)
	assert.Len(t, records, 2)

	pending, err := rdb.XPending(ctx, c.stream, c.group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestPersistFailureKeepsBatchPending(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")

	ctx := context.Background()
	require.NoError(t, c.ensureGroup(ctx))

	require.NoError(t, PublishReading(ctx, rdb, c.stream, Reading{
		DeviceID: "sensor_6", Temperature: 24, Humidity: 52, Timestamp: 1756400005,
	}))

	messages := readGroup(t, c)
	require.Len(t, messages, 1)

	// Break persistence mid-flight: the batch must stay pending
	require.NoError(t, db.Migrator().DropTable(&models.SensorData{}))
	require.Error(t, c.persistBatch(ctx, messages))

	pending, err := rdb.XPending(ctx, c.stream, c.group).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Count)

	// Once the store recovers, the pending replay lands the reading
	require.NoError(t, db.AutoMigrate(&models.SensorData{}))
	require.NoError(t, c.drainPending(ctx))

	var records []models.SensorData
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "sensor_6", records[0].DeviceID)

	pending, err = rdb.XPending(ctx, c.stream, c.group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestPersistBatchEmptyIsNoop(t *testing.T) {
	rdb, db := setupStream(t)
	c := NewConsumer(rdb, db, "iot:sensor:readings", "sensor-group")
	require.NoError(t, c.persistBatch(context.Background(), nil))
}
