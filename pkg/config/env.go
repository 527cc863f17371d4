package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotLockTTL        = "SLOT_LOCK_TTL"
	EnvGatewaySuccessRate = "GATEWAY_SUCCESS_RATE"

	EnvIdempotencyTTL    = "IDEMPOTENCY_TTL"
	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvBookingEvents    = "BOOKING_EVENTS_TOPIC"
	EnvBookingEventsDLQ = "BOOKING_EVENTS_DLQ_TOPIC"
)
