package kafka

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TuningConfig holds broker-level tuning shared by producers and consumers.
// Topic names and brokers come from the service config.
type TuningConfig struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // "none", "gzip", "snappy", "lz4", "zstd"
	ProducerAsync        bool

	ConsumerStartOffset       int64 // -1 = newest, -2 = oldest
	ConsumerMinBytes          int
	ConsumerMaxBytes          int
	ConsumerMaxWait           time.Duration
	ConsumerCommitInterval    time.Duration
	ConsumerHeartbeatInterval time.Duration
	ConsumerSessionTimeout    time.Duration
	ConsumerRebalanceTimeout  time.Duration
	ConsumerMaxRetries        int
}

const (
	defaultProducerMaxAttempts  = 3
	defaultProducerBatchTimeout = 100 * time.Millisecond
	defaultProducerRequireAcks  = -1
	defaultProducerCompression  = "snappy"

	defaultConsumerStartOffset       = int64(-2)
	defaultConsumerMinBytes          = 1
	defaultConsumerMaxBytes          = 10 * 1024 * 1024
	defaultConsumerMaxWait           = 500 * time.Millisecond
	defaultConsumerCommitInterval    = 1 * time.Second
	defaultConsumerHeartbeatInterval = 3 * time.Second
	defaultConsumerSessionTimeout    = 30 * time.Second
	defaultConsumerRebalanceTimeout  = 30 * time.Second
	defaultConsumerMaxRetries        = 3
)

// LoadTuning builds a tuning config for the given brokers, with the knobs
// overridable through environment variables.
func LoadTuning(brokers []string) (*TuningConfig, error) {
	cfg := &TuningConfig{
		Brokers: brokers,

		ProducerMaxAttempts:  getEnvInt("KAFKA_PRODUCER_MAX_ATTEMPTS", defaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration("KAFKA_PRODUCER_BATCH_TIMEOUT", defaultProducerBatchTimeout),
		ProducerRequireAcks:  getEnvInt("KAFKA_PRODUCER_REQUIRE_ACKS", defaultProducerRequireAcks),
		ProducerCompression:  getEnvStr("KAFKA_PRODUCER_COMPRESSION", defaultProducerCompression),
		ProducerAsync:        getEnvBool("KAFKA_PRODUCER_ASYNC", false),

		ConsumerStartOffset:       getEnvInt64("KAFKA_CONSUMER_START_OFFSET", defaultConsumerStartOffset),
		ConsumerMinBytes:          getEnvInt("KAFKA_CONSUMER_MIN_BYTES", defaultConsumerMinBytes),
		ConsumerMaxBytes:          getEnvInt("KAFKA_CONSUMER_MAX_BYTES", defaultConsumerMaxBytes),
		ConsumerMaxWait:           getEnvDuration("KAFKA_CONSUMER_MAX_WAIT", defaultConsumerMaxWait),
		ConsumerCommitInterval:    getEnvDuration("KAFKA_CONSUMER_COMMIT_INTERVAL", defaultConsumerCommitInterval),
		ConsumerHeartbeatInterval: getEnvDuration("KAFKA_CONSUMER_HEARTBEAT_INTERVAL", defaultConsumerHeartbeatInterval),
		ConsumerSessionTimeout:    getEnvDuration("KAFKA_CONSUMER_SESSION_TIMEOUT", defaultConsumerSessionTimeout),
		ConsumerRebalanceTimeout:  getEnvDuration("KAFKA_CONSUMER_REBALANCE_TIMEOUT", defaultConsumerRebalanceTimeout),
		ConsumerMaxRetries:        getEnvInt("KAFKA_CONSUMER_MAX_RETRIES", defaultConsumerMaxRetries),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *TuningConfig) Validate() error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("at least one Kafka broker is required")
	}
	for i, broker := range cfg.Brokers {
		if broker == "" {
			return fmt.Errorf("broker %d cannot be empty", i)
		}
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.ProducerCompression] {
		return fmt.Errorf("ProducerCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.ProducerCompression)
	}

	validAcks := map[int]bool{-1: true, 0: true, 1: true}
	if !validAcks[cfg.ProducerRequireAcks] {
		return fmt.Errorf("ProducerRequireAcks must be -1, 0, or 1, got: %d", cfg.ProducerRequireAcks)
	}

	if cfg.ConsumerStartOffset != -1 && cfg.ConsumerStartOffset != -2 && cfg.ConsumerStartOffset < 0 {
		return fmt.Errorf("ConsumerStartOffset must be -1 (newest), -2 (oldest), or >= 0, got: %d", cfg.ConsumerStartOffset)
	}

	for name, n := range map[string]int{
		"ProducerMaxAttempts": cfg.ProducerMaxAttempts,
		"ConsumerMinBytes":    cfg.ConsumerMinBytes,
		"ConsumerMaxBytes":    cfg.ConsumerMaxBytes,
	} {
		if n <= 0 {
			return fmt.Errorf("%s must be positive, got: %d", name, n)
		}
	}

	for name, d := range map[string]time.Duration{
		"ProducerBatchTimeout":      cfg.ProducerBatchTimeout,
		"ConsumerMaxWait":           cfg.ConsumerMaxWait,
		"ConsumerCommitInterval":    cfg.ConsumerCommitInterval,
		"ConsumerHeartbeatInterval": cfg.ConsumerHeartbeatInterval,
		"ConsumerSessionTimeout":    cfg.ConsumerSessionTimeout,
		"ConsumerRebalanceTimeout":  cfg.ConsumerRebalanceTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got: %s", name, d)
		}
	}

	if cfg.ConsumerMaxRetries < 0 {
		return fmt.Errorf("ConsumerMaxRetries cannot be negative, got: %d", cfg.ConsumerMaxRetries)
	}

	return nil
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if int64Value, err := strconv.ParseInt(value, 10, 64); err == nil {
			return int64Value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
