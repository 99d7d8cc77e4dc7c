package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_ADDR", "LEAVE_API_BASE_URL", "SESSION_SECRET", "SESSION_TTL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.APIBaseURL != "http://127.0.0.1:8000/api/v1" {
		t.Fatalf("APIBaseURL = %q", env.APIBaseURL)
	}
	if env.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v", env.SessionTTL)
	}
	if len(env.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("LEAVE_API_BASE_URL", "https://api.example.com/api/v1/")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://panel.example.com, https://staging.example.com")

	env := LoadEnv()
	if env.AppAddr != ":9999" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.APIBaseURL != "https://api.example.com/api/v1" {
		t.Fatalf("trailing slash not trimmed: %q", env.APIBaseURL)
	}
	if env.SessionTTL != 2*time.Hour {
		t.Fatalf("SessionTTL = %v", env.SessionTTL)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[0] != "https://panel.example.com" {
		t.Fatalf("CORSOrigins = %v", env.CORSOrigins)
	}
}
