package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "aquavalle"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	// Day-pass pricing: a flat per-person rate, no night multiplier.
	DefaultFulldayPrice       = 5.0
	DefaultMaxFulldayCapacity = 20

	DefaultStrictClientIdentity = true

	DefaultJWTTTL       = 24 * time.Hour
	DefaultResetCodeTTL = 15 * time.Minute
	DefaultLockTTL      = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaBrokers      = "localhost:9092"
	DefaultReservationsTopic = "aquavalle.reservations"
	DefaultReservationsDLQ   = "aquavalle.reservations.dlq"
	DefaultNotifierGroupID   = "aquavalle-notifier"
	DefaultLogLevel          = "info"
	DefaultPaginationLimit   = 100
)
