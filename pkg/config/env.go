package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvFulldayPrice       = "FULLDAY_PRICE"
	EnvMaxFulldayCapacity = "MAX_FULLDAY_CAPACITY"

	EnvStrictClientIdentity = "STRICT_CLIENT_IDENTITY"

	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTTTL       = "JWT_TTL"
	EnvResetCodeTTL = "RESET_CODE_TTL"
	EnvLockTTL      = "RESERVATION_LOCK_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvReservationsTopic = "KAFKA_RESERVATIONS_TOPIC"
	EnvReservationsDLQ   = "KAFKA_RESERVATIONS_DLQ_TOPIC"
	EnvNotifierGroupID   = "KAFKA_NOTIFIER_GROUP_ID"

	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvSMTPFromName = "SMTP_FROM_NAME"
	EnvAdminEmail   = "ADMIN_EMAIL"
)
