package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const envPrefix = "fplticker"

type Config struct {
	// Address is the HTTP listen address.
	Address string `default:":8080"`

	// MCPPath is where the MCP streamable HTTP endpoint is mounted.
	MCPPath string `split_words:"true" default:"/mcp"`

	// DevMode switches logging to the human-readable console writer at trace level.
	DevMode  bool   `split_words:"true"`
	LogLevel string `split_words:"true" default:"info"`

	// APIKey guards every endpoint except /health when set. With RequireAuth,
	// startup fails if it is empty.
	APIKey      string `envconfig:"API_KEY"`
	RequireAuth bool   `split_words:"true" default:"false"`
	AuthHeader  string `split_words:"true" default:"X-API-Key"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	FPLBaseURL   string `envconfig:"FPL_BASE_URL" default:"https://fantasy.premierleague.com/api"`
	StandingsURL string `split_words:"true" default:"https://site.api.espn.com/apis/v2/sports/soccer/eng.1/standings"`

	FetchAttempts   uint          `split_words:"true" default:"3"`
	FetchRetryDelay time.Duration `split_words:"true" default:"250ms"`
	FetchTimeout    time.Duration `split_words:"true" default:"20s"`

	// RedisURL selects the Redis cache backend; empty uses the in-process cache.
	// See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL for the format.
	RedisURL    string        `envconfig:"REDIS_URL"`
	RedisPrefix string        `split_words:"true" default:"fplticker:"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// RawRoot, when set, receives a snapshot of every upstream payload.
	RawRoot string `split_words:"true"`

	// AdjustmentsFile is an optional YAML file overriding the difficulty constants.
	AdjustmentsFile string `split_words:"true"`

	DefaultWindow int `split_words:"true" default:"5"`

	ShutdownTimeout time.Duration `split_words:"true" default:"15s"`
}

// Parse loads envFile (if present) into the environment and then reads the
// FPLTICKER_* variables.
func Parse(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			log.Warn().Err(err).Str("file", envFile).Msg("failed to load .env file")
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}
	if cfg.RequireAuth && cfg.APIKey == "" {
		return nil, errors.New("FPLTICKER_API_KEY is required when FPLTICKER_REQUIRE_AUTH is set")
	}
	if cfg.DefaultWindow < 1 || cfg.DefaultWindow > 38 {
		return nil, errors.Errorf("FPLTICKER_DEFAULT_WINDOW must be within 1..38, got %d", cfg.DefaultWindow)
	}
	return &cfg, nil
}

// Usage prints the recognised environment variables.
func Usage() error {
	var cfg Config
	return envconfig.Usage(envPrefix, &cfg)
}
