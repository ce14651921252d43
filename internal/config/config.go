package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Auth       Auth       `yaml:"auth"`
	Autosave   Autosave   `yaml:"autosave"`
	Blob       Blob       `yaml:"blob"`
	GelfAddr   string     `yaml:"gelf_addr" env:"GELF_ADDR"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_SERVER_ADDRESS" env-default:"0.0.0.0:8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_SERVER_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"120s"`
}

type Database struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"data-entry-dev-secret-change-me"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

type Autosave struct {
	// Trailing-edge debounce window for draft saves.
	Interval time.Duration `yaml:"interval" env:"AUTOSAVE_INTERVAL" env-default:"2s"`
}

type Blob struct {
	Bucket        string `yaml:"bucket" env:"BLOB_BUCKET" env-default:"task-documents"`
	Prefix        string `yaml:"prefix" env:"BLOB_PREFIX"`
	Region        string `yaml:"region" env:"BLOB_REGION" env-default:"us-east-1"`
	PublicBaseURL string `yaml:"public_base_url" env:"BLOB_PUBLIC_BASE_URL"`
}

// MustLoad reads the yaml file named by CONFIG_PATH when set, falling
// back to environment variables only.
func MustLoad() *Config {
	var config Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &config); err != nil {
			log.Fatalf("cannot read config %s: %v", configPath, err)
		}
		return &config
	}
	if err := cleanenv.ReadEnv(&config); err != nil {
		log.Fatalf("cannot read config from env: %v", err)
	}
	return &config
}
