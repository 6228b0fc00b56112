package server

import (
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds the server settings, decoded from the environment
type Config struct {
	Port          int           `env:"PORT,default=8000"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN,default=*"`
	AIDelay       time.Duration `env:"AI_THINK_DELAY,default=800ms"`
	Difficulty    string        `env:"AI_DIFFICULTY,default=medium"`
}

// LoadConfig reads the server configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
