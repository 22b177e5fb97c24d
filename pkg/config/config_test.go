package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"API_URL", "API_TIMEOUT", "SESSION_KEY", "TOKEN_TTL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "") // restored on cleanup
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.APIURL != "http://127.0.0.1:5000" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.SessionKey != "token" {
		t.Errorf("SessionKey = %q, want token", cfg.SessionKey)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, want 15s", cfg.APITimeout)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want 15m", cfg.TokenTTL)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_URL", "http://example.test:9000/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := Load()
	if cfg.APIURL != "http://example.test:9000" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("APITimeout = %v, want 3s", cfg.APITimeout)
	}
	if cfg.SessionBackend != "file" {
		t.Errorf("SessionBackend = %q, want file", cfg.SessionBackend)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want fallback for bad value", cfg.TokenTTL)
	}
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}
