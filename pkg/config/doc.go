// Package config loads typed configuration from environment variables.
//
// Structs are described with github.com/caarlos0/env/v11 tags and parsed by
// Load. Values from .env files are merged into the process environment with
// github.com/joho/godotenv: Load reads ./.env once on first use (a missing
// file is fine), and LoadEnv reads explicit files, later files overriding
// earlier ones.
//
//	type Config struct {
//		Env      string `env:"APP_ENV" envDefault:"development"`
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Each configuration type is parsed once and cached; ForceReload re-parses
// and ResetCache drops everything, which is mostly useful in tests.
//
// Errors wrap the sentinels in errors.go and can be matched with errors.Is.
package config
