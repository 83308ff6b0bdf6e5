package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SecretKey         string
	DatabaseURL       string
	RedisURL          string
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayAPIURL    string
	VerifyPayments    bool
	Host              string
	ServerPort        string
	UploadDir         string
	PublicBaseURL     string
	CORSOrigins       []string
	TrustedProxies    []string
	GinMode           string
	SessionTTL        int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	host := getEnv("APP_HOST", "127.0.0.1")
	port := getEnv("PORT", "8080")

	return &Config{
		SecretKey:         getEnv("SECRET_KEY", "dev_key_for_development_only_change_in_production"),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://restaurant.db"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", "your_razorpay_test_key_id"),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", "your_razorpay_test_key_secret"),
		RazorpayAPIURL:    getEnv("RAZORPAY_API_URL", "https://api.razorpay.com/v1"),
		VerifyPayments:    getEnvAsBool("VERIFY_PAYMENTS", false),
		Host:              host,
		ServerPort:        port,
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://"+host+":"+port), "/"),
		CORSOrigins:       getEnvAsList("CORS_ORIGINS", []string{"*"}),
		TrustedProxies:    getEnvAsList("TRUSTED_PROXIES", nil),
		GinMode:           ginMode(getEnv("GIN_MODE", "release")),
		SessionTTL:        getEnvAsInt("SESSION_TTL", 86400),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.ServerPort
}

// ginMode falls back to release for anything gin would reject.
func ginMode(mode string) string {
	switch mode {
	case "debug", "release", "test":
		return mode
	}
	return "release"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
