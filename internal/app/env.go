package app

import (
	"github.com/caarlos0/env/v11"
)

// EnvConfig carries environment-variable defaults for flag registration.
// Flags stay the highest-precedence layer: main reads these as flag default
// values, so an explicit flag always wins over the environment.
type EnvConfig struct {
	API       string `env:"PAGEGIST_API"`
	BaseURL   string `env:"PAGEGIST_BASE_URL"`
	Model     string `env:"PAGEGIST_MODEL"`
	APIKey    string `env:"PAGEGIST_API_KEY"`
	UserAgent string `env:"PAGEGIST_USER_AGENT"`
	Format    string `env:"PAGEGIST_FORMAT"`
	CacheDir  string `env:"PAGEGIST_CACHE_DIR"`
	Retries   *int   `env:"PAGEGIST_RETRIES"`
	Verbose   bool   `env:"PAGEGIST_VERBOSE"`
}

// LoadEnv parses PAGEGIST_* environment variables.
func LoadEnv() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return EnvConfig{}, err
	}
	return ec, nil
}
