package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/sqlutil"
)

func TestBuildDSN(t *testing.T) {
	base := config.StoreConfig{
		Host:     "localhost",
		Port:     3306,
		User:     "flow",
		Password: "secret",
		Database: "depth",
	}

	tests := []struct {
		name     string
		modify   func(*config.StoreConfig)
		expected string
	}{
		{
			name:     "preferred TLS",
			modify:   func(c *config.StoreConfig) { c.TLS = "preferred" },
			expected: "flow:secret@tcp(localhost:3306)/depth?parseTime=true&tls=preferred",
		},
		{
			name:     "empty TLS defaults to preferred",
			modify:   func(c *config.StoreConfig) {},
			expected: "flow:secret@tcp(localhost:3306)/depth?parseTime=true&tls=preferred",
		},
		{
			name:     "TLS disabled",
			modify:   func(c *config.StoreConfig) { c.TLS = "disable" },
			expected: "flow:secret@tcp(localhost:3306)/depth?parseTime=true&tls=false",
		},
		{
			name:     "TLS required",
			modify:   func(c *config.StoreConfig) { c.TLS = "required" },
			expected: "flow:secret@tcp(localhost:3306)/depth?parseTime=true&tls=true",
		},
		{
			name:     "without database",
			modify:   func(c *config.StoreConfig) { c.Database = "" },
			expected: "flow:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "custom port and special password",
			modify: func(c *config.StoreConfig) {
				c.Host = "remote-host"
				c.Port = 3307
				c.Password = "p@ssw0rd!"
			},
			expected: "flow:p@ssw0rd!@tcp(remote-host:3307)/depth?parseTime=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			if got := BuildDSN(&cfg); got != tt.expected {
				t.Errorf("BuildDSN() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := &config.StoreConfig{Driver: "sqlite", Path: "pairs.db"}
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager() returned nil")
	}
	if m.config != cfg {
		t.Error("manager should keep the store config")
	}
	if m.DB != nil {
		t.Error("DB should be nil before Connect")
	}
	if m.maxRetries != 3 {
		t.Errorf("expected maxRetries 3, got %d", m.maxRetries)
	}
	if m.backoff != time.Second {
		t.Errorf("expected backoff 1s, got %v", m.backoff)
	}
}

func TestManagerWithoutConnect(t *testing.T) {
	m := NewManager(&config.StoreConfig{Driver: "sqlite"})

	if err := m.Close(); err != nil {
		t.Errorf("Close() without connect should not error, got %v", err)
	}
	if err := m.Ping(context.Background()); err == nil {
		t.Error("Ping() without connect should error")
	}
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	m := NewManager(&config.StoreConfig{Driver: "postgres"})
	if err := m.Connect(context.Background()); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.db")
	m := NewManager(&config.StoreConfig{Driver: "sqlite", Path: path})

	ctx := context.Background()
	if err := m.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer m.Close()

	if m.Dialect != sqlutil.SQLite {
		t.Errorf("expected sqlite dialect, got %s", m.Dialect)
	}
	if err := m.Ping(ctx); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}

	var mode string
	if err := m.DB.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode wal, got %s", mode)
	}
}

func TestConnect_CanceledContext(t *testing.T) {
	m := NewManager(&config.StoreConfig{
		Driver: "mysql",
		Host:   "127.0.0.1",
		Port:   1,
		User:   "flow",
		TLS:    "disable",
	})
	m.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Connect(ctx); err == nil {
		t.Error("expected error when context is canceled")
	}
}
