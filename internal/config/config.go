package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"go-buk-export/internal/shared/apperror"
)

// Config holds everything the exporter reads from the environment.
// Only the auth token is mandatory; the rest default to the values
// the production run uses.
type Config struct {
	BaseURL   string        `env:"BUK_BASE_URL" envDefault:"https://deloitte-innomotics-test.buk.cl/api/v1/chile"`
	AuthToken string        `env:"BUK_AUTH_TOKEN,required"`
	PageSize  int           `env:"BUK_PAGE_SIZE" envDefault:"1000"`
	Timeout   time.Duration `env:"BUK_HTTP_TIMEOUT" envDefault:"20s"`

	MaxRetries int     `env:"BUK_MAX_RETRIES" envDefault:"5"`
	RatePerSec float64 `env:"BUK_RATE_PER_SEC" envDefault:"10"`

	ActiveOutput     string `env:"EXPORT_ACTIVE_PATH" envDefault:"interfaz1_apibuk.csv"`
	TerminatedOutput string `env:"EXPORT_TERMINATED_PATH" envDefault:"interfaz2_apibuk.csv"`
	MinEntryDate     string `env:"EXPORT_MIN_ENTRY_DATE" envDefault:"20220801"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidConfig, "parse environment", 0)
	}
	if cfg.PageSize <= 0 {
		return nil, apperror.New(apperror.CodeInvalidConfig, "page size must be positive", 0)
	}
	if len(cfg.MinEntryDate) != 8 {
		return nil, apperror.New(apperror.CodeInvalidConfig, "min entry date must be YYYYMMDD", 0)
	}
	return &cfg, nil
}
