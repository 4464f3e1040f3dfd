package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.APIPrefix != "/api" {
		t.Errorf("expected /api prefix, got %s", cfg.APIPrefix)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("API_PREFIX", "v2/")
	t.Setenv("SUPERADMIN_EMAIL", "  Root@School.Test ")
	t.Setenv("SUPERADMIN_PASSWORD", "changeme")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.APIPrefix != "/v2" {
		t.Errorf("expected /v2 prefix, got %s", cfg.APIPrefix)
	}
	if !cfg.SuperAdmin.Enabled() || cfg.SuperAdmin.Email != "root@school.test" {
		t.Errorf("unexpected super admin config: %+v", cfg.SuperAdmin)
	}
}

func TestValidateProductionSecretLength(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		JWTSecret:   "short",
		DatabaseURL: "postgres://localhost/db",
		TokenTTL:    time.Hour,
		BcryptCost:  10,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected short production secret to be rejected")
	}
}
