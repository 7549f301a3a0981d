package config

import (
    "testing"
    "time"
)

func TestParseDefaults(t *testing.T) {
    t.Setenv("DB_DRIVER", "SQLite")
    cfg, err := Parse()
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if cfg.DBDriver != "sqlite" {
        t.Fatalf("DBDriver = %q, want sqlite", cfg.DBDriver)
    }
    if cfg.Port != "3000" {
        t.Fatalf("Port = %q, want 3000", cfg.Port)
    }
    if cfg.APIPrefix != "/api" {
        t.Fatalf("APIPrefix = %q, want /api", cfg.APIPrefix)
    }
    if !cfg.DBAutoMigrate {
        t.Fatal("DBAutoMigrate should default to true")
    }
    if cfg.EventsEnabled {
        t.Fatal("EventsEnabled should default to false")
    }
}

func TestParseNormalizesPrefix(t *testing.T) {
    t.Setenv("DB_DRIVER", "mysql")
    t.Setenv("API_PREFIX", "v2/")
    cfg, err := Parse()
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if cfg.APIPrefix != "/v2" {
        t.Fatalf("APIPrefix = %q, want /v2", cfg.APIPrefix)
    }
}

func TestParseRejectsUnknownDriver(t *testing.T) {
    t.Setenv("DB_DRIVER", "postgres")
    if _, err := Parse(); err == nil {
        t.Fatal("expected unsupported driver error")
    }
}

func TestParseRejectsMalformedBool(t *testing.T) {
    t.Setenv("DB_DRIVER", "sqlite")
    t.Setenv("EVENTS_ENABLED", "maybe")
    if _, err := Parse(); err == nil {
        t.Fatal("expected parse error for EVENTS_ENABLED=maybe")
    }
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_METHODS", " get, head ,")
    t.Setenv("CACHE_TTL", "0s")
    cfg, err := LoadCacheConfig()
    if err != nil {
        t.Fatalf("load cache config: %v", err)
    }
    if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || len(cfg.Methods) != 2 {
        t.Fatalf("Methods = %v, want GET and HEAD", cfg.Methods)
    }
    if cfg.TTL != time.Second {
        t.Fatalf("TTL = %s, want clamped to 1s", cfg.TTL)
    }
    if cfg.Prefix != "catalog-cache" {
        t.Fatalf("Prefix = %q", cfg.Prefix)
    }
}

func TestNormalizeRateLimit(t *testing.T) {
    got := normalizeRateLimit(RateLimitConfig{
        Capacity:       0,
        RefillTokens:   0,
        RefillInterval: 0,
        Burst:          10,
        RefillEvery:    2 * time.Second,
    })
    if got.Capacity != 10 {
        t.Fatalf("Capacity = %d, want burst 10", got.Capacity)
    }
    if got.RefillTokens != 1 || got.RefillInterval != 2*time.Second {
        t.Fatalf("refill = %d per %s, want 1 per 2s", got.RefillTokens, got.RefillInterval)
    }
    if got.TTL != 10*time.Second {
        t.Fatalf("TTL = %s, want 5 intervals", got.TTL)
    }
}

func TestRedisAddress(t *testing.T) {
    if got := (RedisConfig{Host: "cache", Port: "6380", Addr: "x:1"}).Address(); got != "cache:6380" {
        t.Fatalf("Address = %q", got)
    }
    if got := (RedisConfig{Host: "cache", Addr: "x:1"}).Address(); got != "x:1" {
        t.Fatalf("Address fallback = %q", got)
    }
}
