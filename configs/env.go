package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting the server needs.
type Config struct {
	Port      string `env:"PORT" envDefault:"5000"`
	MongoURI  string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DBName    string `env:"MONGO_DB" envDefault:"katachii"`
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
}

// Load reads the optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// .env is a local-dev convenience; in production the vars come from the host.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
