package command

import (
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lippserd/mgnrega-api/pkg/config"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.Logging{Level: "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info to be disabled at warn level")
	}
	if !logger.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Error("expected warn to be enabled")
	}

	if _, err := NewLogger(config.Logging{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestServer(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("can't create sqlmock: %v", err)
	}
	defer db.Close()

	cfg := &config.Config{HTTP: config.HTTP{Port: 8081}}
	cmd := Command{Config: cfg, Logger: zap.NewNop().Sugar()}

	srv := cmd.Server(pool.New(sqlx.NewDb(db, "mysql"), 1))
	if srv.Addr != ":8081" {
		t.Errorf("expected :8081, got %q", srv.Addr)
	}
	if srv.Handler == nil {
		t.Error("expected handler")
	}
}
