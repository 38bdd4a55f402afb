package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is loaded from environment variables, with defaults suitable for
// local development. JWT_SECRET must be overridden in production.
type Config struct {
	Port       string        `env:"PORT" env-default:"4000"`
	MongoURI   string        `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	DBName     string        `env:"DB_NAME" env-default:"student-matching"`
	JWTSecret  string        `env:"JWT_SECRET" env-default:"change-me-in-production"`
	JWTTTL     time.Duration `env:"JWT_TTL" env-default:"168h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"12"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

// MustLoad panics when the environment cannot be parsed.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
