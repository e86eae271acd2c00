package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Cosmos holds the Azure Cosmos DB connection settings.
type Cosmos struct {
	URI       string `env:"COSMOS_URI,required"`
	Key       string `env:"COSMOS_KEY,required"`
	Database  string `env:"COSMOS_DATABASE,required"`
	Container string `env:"COSMOS_CONTAINER,required"`
}

// Postgres holds the PostgreSQL connection settings.
type Postgres struct {
	URL string `env:"DATABASE_URL,required"`
}

// Consumer configures the analytics consumer process.
type Consumer struct {
	RedisAddr string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	LogFormat string `env:"LOG_FORMAT"     envDefault:"console"`
	Group     string `env:"CONSUMER_GROUP" envDefault:"analytics"`
}

// LoadDotEnv loads variables from the given files (".env" when none are given)
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

// Load parses T from the environment.
func Load[T any]() (*T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}
