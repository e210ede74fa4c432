// Package app holds process-wide wiring shared by the CLI commands.
package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/handlekit/pkg/clientip"
	"github.com/dmitrymomot/handlekit/pkg/config"
	"github.com/dmitrymomot/handlekit/pkg/httpserver"
	"github.com/dmitrymomot/handlekit/pkg/logger"
	"github.com/dmitrymomot/handlekit/pkg/qrcode"
	"github.com/dmitrymomot/handlekit/pkg/ratelimiter"
	"github.com/dmitrymomot/handlekit/pkg/redis"
	"github.com/dmitrymomot/handlekit/pkg/requestid"
	"github.com/dmitrymomot/handlekit/pkg/validator"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is read from the environment (and ./.env when present).
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"handlekit"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	QRSize    int    `env:"QR_SIZE" envDefault:"256"`

	// TrustProxy honours X-Forwarded-For and friends when resolving the
	// client address for rate limiting.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
	Redis     redis.Config
}

// LoadConfig parses and validates Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once. The error matches
// ErrInvalidConfig, and validator.ExtractValidationErrors lists the fields.
func (c Config) Validate() error {
	var lvl slog.Level
	levelErr := lvl.UnmarshalText([]byte(c.LogLevel))

	err := validator.Apply(
		validator.InListCaseInsensitive("LOG_FORMAT", c.LogFormat, []string{string(logger.FormatText), string(logger.FormatJSON)}),
		validator.Satisfies("LOG_LEVEL", levelErr == nil, "must be debug, info, warn or error, optionally with an offset such as warn+2"),
		validator.RangeNum("QR_SIZE", c.QRSize, 1, qrcode.MaxSize),
	)
	rlErr := c.RateLimit.Validate()

	if err != nil || rlErr != nil {
		return errors.Join(ErrInvalidConfig, err, rlErr)
	}
	return nil
}

// Logger builds the process logger. The environment picks the defaults;
// LOG_LEVEL and LOG_FORMAT override them.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(c.Env, c.Name),
		logger.WithLevelName(c.LogLevel),
		logger.WithFormat(logger.Format(c.LogFormat)),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
}
