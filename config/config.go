package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken     string   `env:"TELEGRAM_TOKEN"`
	DatabasePath      string   `env:"DATABASE_PATH" envDefault:"paypulse.db" validate:"required"`
	TaxRate           float64  `env:"TAX_RATE" envDefault:"0.20" validate:"gte=0,lte=1"`
	ExpenseCategories []string `env:"EXPENSE_CATEGORIES" envDefault:"food,travel,supplies,other" validate:"min=1,dive,required"`
	Workers           int      `env:"WORKERS" envDefault:"4" validate:"gte=1"`
	QueueSize         int      `env:"QUEUE_SIZE" envDefault:"32" validate:"gte=0"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error fatal panic"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	if cfg.TelegramToken == "" {
		return nil, ErrNoToken{}
	}
	for i, c := range cfg.ExpenseCategories {
		cfg.ExpenseCategories[i] = strings.ToLower(strings.TrimSpace(c))
	}
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, err
	}
	return cfg, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set"
}
