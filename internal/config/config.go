package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env            string
	ServerAddr     string
	FrontendOrigin string

	StorageBackend  string // "file" or "postgres"
	CaseStudiesFile string
	DatabaseURL     string

	MediaBackend string // "local" or "s3"
	UploadsDir   string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3Bucket     string
	S3UseSSL     bool
	S3PublicURL  string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string
	AdminAPIKey       string
	JWTSecret         string
	AccessTTLMinutes  int
	RefreshTTLMinutes int
	CookieSecure      bool

	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	RateLimitContact   int
	RateLimitWindowSec int
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return fallback
}

func Load() (*Config, error) {
	loadDotEnv(".env")

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),

		StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
		CaseStudiesFile: getEnv("CASE_STUDIES_FILE", "case_studies.json"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),

		MediaBackend: getEnv("MEDIA_BACKEND", "local"),
		UploadsDir:   getEnv("UPLOADS_DIR", "uploads"),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Bucket:     getEnv("S3_BUCKET", "pixdot-media"),
		S3UseSSL:     getEnvBool("S3_USE_SSL", true),
		S3PublicURL:  getEnv("S3_PUBLIC_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", getEnv("GMAIL_USER", "")),
		SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("GMAIL_PASSWORD", "")),

		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminAPIKey:       getEnv("ADMIN_API_KEY", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTTLMinutes:  getEnvInt("ACCESS_TTL_MINUTES", 15),
		RefreshTTLMinutes: getEnvInt("REFRESH_TTL_MINUTES", 43200),
		CookieSecure:      getEnvBool("COOKIE_SECURE", false),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),

		RateLimitContact:   getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),
	}

	switch cfg.StorageBackend {
	case "file":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("config: STORAGE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return nil, errors.New("config: unknown STORAGE_BACKEND " + strconv.Quote(cfg.StorageBackend))
	}

	switch cfg.MediaBackend {
	case "local":
	case "s3":
		if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			return nil, errors.New("config: MEDIA_BACKEND=s3 requires S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
		}
	default:
		return nil, errors.New("config: unknown MEDIA_BACKEND " + strconv.Quote(cfg.MediaBackend))
	}

	return cfg, nil
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}
