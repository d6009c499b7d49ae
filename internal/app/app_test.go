package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"leadstyle/internal/config"
	"leadstyle/internal/instrument"
	"leadstyle/internal/model"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StoreDriver:        config.StoreSQLite,
		SQLitePath:         filepath.Join(t.TempDir(), "app.db"),
		JWTSecret:          "secret",
		SupervisorPassword: "admin123",
		SessionTTL:         time.Hour,
	}
}

func TestNewWithSQLiteAndMemoryCaches(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(t))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer a.Close(ctx)

	reg, err := a.AssessmentService.Register(ctx, &model.RegisterRequest{
		FirstName: "Test", LastName: "User", Email: "test@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if reg.TotalQuestions != a.Instrument.Count() {
		t.Fatalf("TotalQuestions = %d", reg.TotalQuestions)
	}
}

func TestNewRejectsInvalidInstrument(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.InstrumentPath = filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(cfg.InstrumentPath, []byte("version: 1\nquestions: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := New(context.Background(), cfg)
	if !errors.Is(err, instrument.ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}
