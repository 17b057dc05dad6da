package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type DatabaseConfig struct {
	URL           string
	MigrationsDir string
	MaxConns      int
}

// Enabled reports whether a database is configured. Without one the
// service keeps prediction history in memory.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

type KafkaConfig struct {
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Topic         string
	Brokers       []string
	TLS           bool
	SASLEnabled   bool
}

// Enabled reports whether events go to Kafka rather than the log.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type GRPCConfig struct {
	TLSCertFile string
	TLSKeyFile  string
	Reflection  bool
}

// AuthConfig enables bearer-token authentication on the JSON API and gRPC.
// PublicKeyFile takes precedence over Secret.
type AuthConfig struct {
	Secret        string
	PublicKeyFile string
	Issuer        string
}

// Enabled reports whether any key material is configured.
func (a AuthConfig) Enabled() bool {
	return a.Secret != "" || a.PublicKeyFile != ""
}

type TelemetryConfig struct {
	OTLPEndpoint string
	LogLevel     string
	LogFormat    string
	SampleRatio  float64
}

type Config struct {
	ServiceName string
	Environment string
	ArtifactDir string
	DB          DatabaseConfig
	Kafka       KafkaConfig
	GRPC        GRPCConfig
	Auth        AuthConfig
	Telemetry   TelemetryConfig
	HTTPPort    int
	GRPCPort    int
	// RateLimitRPS caps prediction requests per second on HTTP; 0 disables it.
	RateLimitRPS int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		ServiceName:  getEnv("SERVICE_NAME", "loanrisk-service"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		HTTPPort:     getEnvInt("HTTP_PORT", 8501),
		GRPCPort:     getEnvInt("GRPC_PORT", 9501),
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 50),
		ArtifactDir:  getEnv("ARTIFACT_DIR", "./artifacts"),
		DB: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/persistence/postgres/migrations"),
			MaxConns:      getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "loanrisk.events"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		GRPC: GRPCConfig{
			TLSCertFile: getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:  getEnv("GRPC_TLS_KEY_FILE", ""),
			Reflection:  getEnvBool("GRPC_REFLECTION", false),
		},
		Auth: AuthConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", "json"),
			SampleRatio:  getEnvFloat("OTEL_TRACES_SAMPLER_RATIO", 1),
		},
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT %d is out of range", c.GRPCPort))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS %d must not be negative", c.RateLimitRPS))
	}
	if c.ArtifactDir == "" {
		errs = append(errs, errors.New("ARTIFACT_DIR is required"))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		errs = append(errs, errors.New("KAFKA_SASL_USERNAME is required when SASL is enabled"))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}

	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
