package kafka

import "time"

// Config holds Kafka connection parameters.
type Config struct {
	// SASL configuration for authentication.
	SASLMechanism string // "PLAIN" or "SCRAM-SHA-256" or "SCRAM-SHA-512"
	SASLUsername  string
	SASLPassword  string

	ClientID string
	Brokers  []string

	// BatchTimeout bounds how long the writer waits to fill a batch.
	BatchTimeout time.Duration

	// TLS enables TLS for Kafka connections.
	TLS         bool
	SASLEnabled bool

	// AllowAutoTopicCreation lets the broker create missing topics on write.
	AllowAutoTopicCreation bool
}
