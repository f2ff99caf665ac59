package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all startup configuration. Model order and key order are
// significant: failover iterates them exactly as declared.
type Config struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`

	OpenRouterKeys []string `env:"OPENROUTER_API_KEYS" envSeparator:","`
	GoogleAIKey    string   `env:"GOOGLE_AI_API_KEY"`
	OllamaHost     string   `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`

	PrimaryModels  []string `env:"PRIMARY_MODELS" envSeparator:"," envDefault:"nousresearch/hermes-3-llama-3.1-405b:free,meta-llama/llama-3-8b-instruct:free,qwen/qwen-2-7b-instruct:free,google/gemma-2-9b-it:free,mistralai/mistral-7b-instruct:free,microsoft/phi-3-mini-128k-instruct:free,gryphe/mythomist-7b:free,openchat/openchat-7b:free"`
	FallbackModels []string `env:"FALLBACK_MODELS" envSeparator:"," envDefault:"google/gemini-pro"`

	SiteURL  string `env:"YOUR_SITE_URL" envDefault:"http://localhost"`
	SiteName string `env:"YOUR_SITE_NAME" envDefault:"Local Development"`

	ListenAddr     string `env:"LISTEN_ADDR" envDefault:":8000"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"` // memory | sqlite | redis
	DatabasePath   string `env:"DATABASE_PATH" envDefault:"data/messages.db"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SnapshotPath   string `env:"SNAPSHOT_PATH" envDefault:"data/persona.json"`
	LogFile        string `env:"LOG_FILE"`

	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"30s"`
	// HealthCacheTTL keeps the last working (model, key) pair for this long
	// before re-checking. 0 = re-check on every request.
	HealthCacheTTL time.Duration `env:"HEALTH_CACHE_TTL" envDefault:"0s"`
}

// New loads .env (if present) and parses the environment. The bot token is
// mandatory; everything else has a default or may be empty.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	cfg.OpenRouterKeys = dedupeKeys(cfg.OpenRouterKeys)
	return cfg, nil
}

// dedupeKeys drops empty and repeated credentials while preserving order.
func dedupeKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
