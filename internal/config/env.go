package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string
}

// LoadEnv reads configuration from the process environment, loading a local
// .env file first when present (missing file is not an error).
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/travel_checkout?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "change-me-in-production"
	}

	return Env{
		AppAddr:   appAddr,
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:     dsn,
		JWTSecret: secret,
	}
}

var (
	jwtOnce   sync.Once
	jwtSecret []byte
)

// JWTSecretBytes is the signing key used by auth handlers and middleware.
func JWTSecretBytes() []byte {
	jwtOnce.Do(func() {
		jwtSecret = []byte(LoadEnv().JWTSecret)
	})
	return jwtSecret
}
