// Package config loads server settings from .env and the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultAddr      = ":8080"
	DefaultCacheSize = 1024
	DefaultModel     = "gemini-2.5-flash"
	DefaultEnv       = "local"
)

type Config struct {
	Addr        string
	Env         string
	Secret      []byte
	DatabaseURL string
	CacheSize   int
	Gemini      GeminiConfig

	// EphemeralSecret is set when no secret was configured and one was
	// generated. Props tokens do not survive a restart in that case.
	EphemeralSecret bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Enabled reports whether remote generation is configured.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// IsLocal reports whether the server runs in the local environment.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Env, DefaultEnv)
}

// Load reads .env files and then the process environment. Variables already
// set in the environment win over .env. With no files, ./.env is read if it
// exists; files named explicitly must load.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	cacheSize := DefaultCacheSize
	if raw := env("CARDFORGE_CACHE_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: CARDFORGE_CACHE_SIZE must be a positive integer, got %q", raw)
		}
		cacheSize = n
	}

	cfg := &Config{
		Addr:        normalizeAddr(firstNonEmpty(env("CARDFORGE_ADDR"), env("PORT"), DefaultAddr)),
		Env:         firstNonEmpty(env("APP_ENV"), DefaultEnv),
		DatabaseURL: env("CARDFORGE_DATABASE_URL"),
		CacheSize:   cacheSize,
		Gemini: GeminiConfig{
			APIKey: env("GEMINI_API_KEY"),
			Model:  firstNonEmpty(env("GEMINI_MODEL"), DefaultModel),
		},
	}

	if secret := env("CARDFORGE_SECRET"); secret != "" {
		cfg.Secret = []byte(secret)
	} else {
		if !cfg.IsLocal() {
			return nil, fmt.Errorf("config: CARDFORGE_SECRET is required when APP_ENV=%s", cfg.Env)
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Secret = secret
		cfg.EphemeralSecret = true
	}
	return cfg, nil
}

func randomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("config: generate secret: %w", err)
	}
	return []byte(hex.EncodeToString(b)), nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// normalizeAddr accepts "8080" as well as ":8080" and "host:8080".
func normalizeAddr(addr string) string {
	if strings.Contains(addr, ":") {
		return addr
	}
	return ":" + addr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
