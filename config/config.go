package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"PORT" envDefault:"8090"`

		// Origins allowed to call the API, comma separated
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Listings backing source configuration
	Listings struct {
		// Source kind: "json" or "sqlite"
		Source string `env:"LISTINGS_SOURCE" envDefault:"json"`

		// Path to the exported properties JSON file
		Path string `env:"LISTINGS_PATH" envDefault:"data/properties.json"`

		// Path to the SQLite listings database
		SQLitePath string `env:"SQLITE_PATH" envDefault:"data/listings.db"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
