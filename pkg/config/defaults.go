package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "reservio"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL = 10 * time.Second

	// Reference gateway behaviour: roughly four accepts out of five.
	DefaultGatewaySuccessRate = 0.8

	DefaultIdempotencyTTL    = 24 * time.Hour
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute

	DefaultKafkaBrokers     = "localhost:9092"
	DefaultBookingEvents    = "reservio.booking-events"
	DefaultBookingEventsDLQ = "reservio.booking-events.dlq"

	DefaultPaginationLimit = 100
)
