// Package config loads environment configuration and constructs the
// external collaborators (Mongo, Redis). Everything is returned as values
// to be injected into constructors; there are no package globals.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the environment-driven configuration of the server.
type Config struct {
	MongoURL    string
	DBName      string
	SecretKey   string
	RedisAddr   string
	CORSOrigins []string
	UploadsDir  string
	Port        string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		MongoURL:    getenv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:      getenv("DB_NAME", "church"),
		SecretKey:   getenv("SECRET_KEY", "church-management-secret-key-2024"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "*"), ","),
		UploadsDir:  getenv("UPLOADS_DIR", "uploads"),
		Port:        getenv("PORT", "8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
