package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvStorage       = "ZENTA_STORAGE"
	EnvRedisAddr     = "ZENTA_REDIS_ADDR"
	EnvRedisPassword = "ZENTA_REDIS_PASSWORD"
	EnvRedisDB       = "ZENTA_REDIS_DB"
	EnvLogLevel      = "ZENTA_LOG_LEVEL"
	EnvLogFormat     = "ZENTA_LOG_FORMAT"
	EnvOutput        = "ZENTA_OUTPUT"
)

// LoadDotEnv loads a .env file from the working directory if there is one.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any ZENTA_* variables that are set.
func ApplyEnv(cfg *Config) {
	setString(&cfg.Storage.Backend, EnvStorage)
	setString(&cfg.Storage.RedisAddr, EnvRedisAddr)
	setString(&cfg.Storage.RedisPassword, EnvRedisPassword)
	if v := os.Getenv(EnvRedisDB); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.RedisDB = n
		}
	}
	setString(&cfg.Log.Level, EnvLogLevel)
	setString(&cfg.Log.Format, EnvLogFormat)
	setString(&cfg.Output, EnvOutput)
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
