package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// SessionTTLDays bounds how long an idle cart/favorites snapshot survives.
	SessionTTLDays int

	AMQPURL string

	JWTIssuer         string
	JWTSecret         string
	AccessTokenTTLMin int

	AdminEmail        string
	AdminPasswordHash string

	GeminiAPIKey string
	GeminiModel  string

	UploadDir     string
	UploadBucket  string
	PublicBaseURL string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),

		RedisAddr:      get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		RedisDB:        getInt("REDIS_DB", 0),
		SessionTTLDays: getInt("SESSION_TTL_DAYS", 30),

		AMQPURL: get("AMQP_URL", ""),

		JWTIssuer:         get("JWT_ISSUER", "esencia-retro"),
		JWTSecret:         get("JWT_SECRET", ""),
		AccessTokenTTLMin: getInt("ACCESS_TOKEN_TTL_MIN", 60),

		AdminEmail:        get("ADMIN_EMAIL", ""),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),

		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash"),

		UploadDir:     get("UPLOAD_DIR", "./uploads"),
		UploadBucket:  get("UPLOAD_BUCKET", "camisetas"),
		PublicBaseURL: get("PUBLIC_BASE_URL", "http://localhost:8080"),

		SMTPHost: get("SMTP_HOST", ""),
		SMTPPort: getInt("SMTP_PORT", 587),
		SMTPUser: get("SMTP_USER", ""),
		SMTPPass: get("SMTP_PASS", ""),
		SMTPFrom: get("SMTP_FROM", ""),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
