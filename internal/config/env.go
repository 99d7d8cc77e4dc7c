package config

import (
	"os"
	"strings"
	"time"
)

type Env struct {
	AppAddr       string
	GinMode       string
	APIBaseURL    string
	SessionSecret string
	SessionTTL    time.Duration
	DBDSN         string
	AuditLogPath  string
	CORSOrigins   []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	apiBase := strings.TrimSpace(os.Getenv("LEAVE_API_BASE_URL"))
	if apiBase == "" {
		apiBase = "http://127.0.0.1:8000/api/v1"
	}
	apiBase = strings.TrimRight(apiBase, "/")

	secret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ttl = d
		}
	}

	auditPath := strings.TrimSpace(os.Getenv("AUDIT_LOG_PATH"))
	if auditPath == "" {
		auditPath = "logs/actions.jsonl"
	}

	origins := []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		APIBaseURL:    apiBase,
		SessionSecret: secret,
		SessionTTL:    ttl,
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		AuditLogPath:  auditPath,
		CORSOrigins:   origins,
	}
}
