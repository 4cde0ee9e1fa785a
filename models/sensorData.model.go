package models

import "time"

// SensorData is one IoT reading persisted by the stream consumer.
type SensorData struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceID    string    `gorm:"size:100;index;not null" json:"device_id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Timestamp   float64   `json:"timestamp"` // producer-side unix time, fractional seconds
	CreatedAt   time.Time `json:"created_at"`
}
