package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the bookmarkd server.
type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	JWT struct {
		Secret   string
		Lifetime time.Duration
	}
	Log struct {
		Level  string
		Pretty bool
	}
}

// Load reads config from environment (BOOKMARKD_ prefix) and optional bookmarkd.yaml.
// Every key has a development default so a bare `bookmarkd-server` starts locally.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarkd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "bookmarkd.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.lifetime", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")

	lifetime, err := time.ParseDuration(v.GetString("jwt.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKD_JWT_LIFETIME: %w", err)
	}
	cfg.JWT.Lifetime = lifetime

	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKD_DB_DSN must not be empty")
	}

	return cfg, nil
}
