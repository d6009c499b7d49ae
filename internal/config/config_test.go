package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "MONGO_DB", "REDIS_URI", "PORT", "STORE_DRIVER", "SQLITE_PATH",
		"JWT_SECRET", "SUPERVISOR_PASSWORD", "INSTRUMENT_PATH", "SESSION_TTL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StoreDriver != StoreMongo || cfg.HTTPPort != "8080" || cfg.MongoDB != "leadstyle" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SupervisorPassword != "admin123" || cfg.SessionTTL != time.Hour {
		t.Fatalf("unexpected auth defaults %+v", cfg)
	}
	if cfg.RedisAddr != "" || cfg.CORS.AllowedOrigins != "*" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SUPERVISOR_PASSWORD", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.StoreDriver != StoreSQLite {
		t.Errorf("StoreDriver = %q", cfg.StoreDriver)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("SessionTTL = %s", cfg.SessionTTL)
	}
	if cfg.SupervisorPassword != "s3cret" {
		t.Errorf("SupervisorPassword = %q", cfg.SupervisorPassword)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"bad ttl":      {"SESSION_TTL", "soon"},
		"negative ttl": {"SESSION_TTL", "-1m"},
		"bad driver":   {"STORE_DRIVER", "postgres"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
