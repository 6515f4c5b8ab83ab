package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment conventions.
const (
	EnvPrefix     = "FPL_"
	EnvConfigPath = EnvPrefix + "CONFIG"
	EnvDotenvPath = EnvPrefix + "DOTENV"
	defaultDotenv = ".env"
)

// Load builds a Config by layering defaults, optional files, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file if FPL_CONFIG is set
//  3. .env file (FPL_DOTENV, default ".env"), skipped when absent
//  4. env (prefix FPL_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	dotenv, err := readDotenv()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = dotenv[EnvConfigPath]
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	if err := k.Load(dotenvProvider(dotenv), nil); err != nil {
		return nil, fmt.Errorf("%w: dotenv: %w", ErrLoadConfig, err)
	}

	// FPL_LOG_LEVEL -> log_level; keys stay flat to match the koanf tags.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// readDotenv reads the .env file without touching the process environment.
func readDotenv() (map[string]string, error) {
	path := os.Getenv(EnvDotenvPath)
	if path == "" {
		path = defaultDotenv
	}
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return vals, nil
}

// dotenvProvider exposes FPL_ prefixed .env values as a koanf provider.
type dotenvProvider map[string]string

func (p dotenvProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("dotenv provider does not support ReadBytes")
}

func (p dotenvProvider) Read() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		if strings.HasPrefix(k, EnvPrefix) {
			out[envKey(k)] = v
		}
	}
	return out, nil
}
