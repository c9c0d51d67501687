package config

import (
	"os"
	"strings"
	"time"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

type Config struct {
	Port          string
	Env           string
	StorageDriver string
	MongoURL      string
	DBName        string
	Timezone      string
	CORSOrigins   []string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8081"),
		Env:           getEnv("APP_ENV", "production"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageMemory),
		MongoURL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "backoffice"),
		Timezone:      getEnv("TIMEZONE", "America/Sao_Paulo"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

// IsDevelopment reports whether APP_ENV selects the development logger.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location resolves Timezone, falling back to a fixed UTC-3 zone when the
// tz database is missing from the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
