package config

import (
	"testing"

	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != "4000" {
		t.Errorf("expected default port 4000, got %s", cfg.Server.Port)
	}
	if cfg.JWT.ExpirationHours != 8 {
		t.Errorf("expected default token expiry 8h, got %d", cfg.JWT.ExpirationHours)
	}
	if cfg.DB.LogLevel != logger.Warn {
		t.Errorf("expected default db log level warn, got %v", cfg.DB.LogLevel)
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Server.Port)
	}
	if cfg.DB.Host != "db.internal" {
		t.Errorf("expected db host db.internal, got %s", cfg.DB.Host)
	}
	if cfg.JWT.ExpirationHours != 2 {
		t.Errorf("expected token expiry 2h, got %d", cfg.JWT.ExpirationHours)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != want[0] || cfg.Server.CORSOrigins[1] != want[1] {
		t.Errorf("expected origins %v, got %v", want, cfg.Server.CORSOrigins)
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=d sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
