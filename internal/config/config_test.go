package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":5000" {
		t.Errorf("ListenPort = %q, want :5000", cfg.ListenPort)
	}
	if cfg.DataFile != "data/flights.json" {
		t.Errorf("DataFile = %q, want data/flights.json", cfg.DataFile)
	}
	if cfg.ReloadInterval != 0 {
		t.Errorf("ReloadInterval = %v, want 0 (manual reload only)", cfg.ReloadInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty (search-only mode)", cfg.RedisAddr)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.BookingRetention != 30*24*time.Hour {
		t.Errorf("BookingRetention = %v, want 720h", cfg.BookingRetention)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FLIGHTS_LISTEN_PORT", ":8080")
	t.Setenv("FLIGHTS_DATA_FILE", "/tmp/fixtures.yaml")
	t.Setenv("FLIGHTS_RELOAD_INTERVAL", "5m")
	t.Setenv("FLIGHTS_LOG_LEVEL", "warn")
	t.Setenv("FLIGHTS_PRETTY_LOG", "false")
	t.Setenv("FLIGHTS_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FLIGHTS_BOOKING_PER_MINUTE", "30")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %q, want :8080", cfg.ListenPort)
	}
	if cfg.DataFile != "/tmp/fixtures.yaml" {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if cfg.ReloadInterval != 5*time.Minute {
		t.Errorf("ReloadInterval = %v, want 5m", cfg.ReloadInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.PrettyLog {
		t.Error("PrettyLog should be false")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.BookingPerMinute != 30 {
		t.Errorf("BookingPerMinute = %d, want 30", cfg.BookingPerMinute)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FLIGHTS_RELOAD_INTERVAL", "soon")
	t.Setenv("FLIGHTS_PRETTY_LOG", "yes please")
	t.Setenv("FLIGHTS_BOOKING_BURST", "many")

	cfg := Load()

	if cfg.ReloadInterval != 0 {
		t.Errorf("ReloadInterval = %v, want default 0", cfg.ReloadInterval)
	}
	if !cfg.PrettyLog {
		t.Error("PrettyLog should fall back to default true")
	}
	if cfg.BookingBurst != 5 {
		t.Errorf("BookingBurst = %d, want default 5", cfg.BookingBurst)
	}
}

func TestLoadPanicsWhenRequiredPasswordMissing(t *testing.T) {
	t.Setenv("FLIGHTS_REDIS_ADDR", "localhost:6379")
	t.Setenv("FLIGHTS_REDIS_PASSWORD_REQUIRED", "true")

	defer func() {
		if recover() == nil {
			t.Error("Load() should panic when the required Redis password is missing")
		}
	}()
	Load()
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a,b", []string{"a", "b"}},
		{" a , b ,", []string{"a", "b"}},
		{`"10.0.0.0/8", '192.168.1.1'`, []string{"10.0.0.0/8", "192.168.1.1"}},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
