package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds application configuration sourced from environment variables.
// Shop identity fields appear on the exported quote document and in the share
// message.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DBPath        string `env:"DB_PATH" envDefault:"./cotizador.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:"web/templates"`
	ShopName      string `env:"SHOP_NAME" envDefault:"Estrategias DPM"`
	ShopSlogan    string `env:"SHOP_SLOGAN" envDefault:"Diseño, Publicidad y Mercadeo"`
	ShopCity      string `env:"SHOP_CITY" envDefault:"La Unión, Nariño"`
	ShopPhone     string `env:"SHOP_PHONE"`
}

// Load reads a local .env file when present and parses the environment.
// A missing .env is not an error; production injects real variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config from environment: %w", err)
	}
	return cfg, nil
}
