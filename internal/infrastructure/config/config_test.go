package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "GRPC_PORT", "ARTIFACT_DIR", "DATABASE_URL", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL", "RATE_LIMIT_RPS", "JWT_SECRET", "JWT_PUBLIC_KEY_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8501, cfg.HTTPPort)
	assert.Equal(t, 9501, cfg.GRPCPort)
	assert.Equal(t, "./artifacts", cfg.ArtifactDir)
	assert.Equal(t, 50, cfg.RateLimitRPS)
	assert.Equal(t, "loanrisk.events", cfg.Kafka.Topic)
	assert.False(t, cfg.DB.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "info", cfg.Telemetry.LogLevel)
	assert.Equal(t, ":8501", cfg.HTTPAddr())
	assert.Equal(t, ":9501", cfg.GRPCAddr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("GRPC_PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://loanrisk@db/loanrisk")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "0.25")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PUBLIC_KEY_FILE", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9501, cfg.GRPCPort, "invalid ints fall back to the default")
	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.GRPC.Reflection)
	assert.Equal(t, 0.25, cfg.Telemetry.SampleRatio)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_Auth(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PUBLIC_KEY_FILE", "/etc/loanrisk/jwt.pub")
	t.Setenv("JWT_ISSUER", "auth.example.com")

	cfg := Load()

	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, "/etc/loanrisk/jwt.pub", cfg.Auth.PublicKeyFile)
	assert.Equal(t, "auth.example.com", cfg.Auth.Issuer)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Config{
		HTTPPort:     9000,
		GRPCPort:     9000,
		ArtifactDir:  "",
		RateLimitRPS: -1,
		Kafka:        KafkaConfig{Brokers: []string{"k:9092"}, SASLEnabled: true},
		GRPC:         GRPCConfig{TLSCertFile: "cert.pem"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"must differ", "ARTIFACT_DIR", "KAFKA_TOPIC", "KAFKA_SASL_USERNAME", "GRPC_TLS_CERT_FILE", "RATE_LIMIT_RPS"} {
		assert.Contains(t, err.Error(), want)
	}
}
