package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/badfoxmc/cardano-api/internal/fanout"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BlockfrostURL          string
	BlockfrostProjectID    string
	TokenRegistryURL       string
	RankProviderURL        string
	MarketURL              string
	IPFSGatewayURL         string
	HTTPPort               string
	UpstreamRetryMax       int
	UpstreamRetryBaseDelay time.Duration
	UpstreamTimeout        time.Duration
	RequestTimeout         time.Duration
	FanoutConcurrency      int
	RegistryCacheTTL       time.Duration
	MetricsNamespace       string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		BlockfrostURL:          envOrDefault("BLOCKFROST_URL", "https://cardano-mainnet.blockfrost.io/api/v0"),
		BlockfrostProjectID:    envOrDefaultWarn("BLOCKFROST_PROJECT_ID", ""),
		TokenRegistryURL:       envOrDefault("TOKEN_REGISTRY_URL", "https://tokens.cardano.org"),
		RankProviderURL:        envOrDefault("RANK_PROVIDER_URL", "https://api.cnft.tools"),
		MarketURL:              envOrDefault("MARKET_URL", "https://server.jpgstoreapis.com"),
		IPFSGatewayURL:         envOrDefault("IPFS_GATEWAY_URL", "https://ipfs.io"),
		HTTPPort:               envOrDefault("HTTP_PORT", "8080"),
		UpstreamRetryMax:       max(envOrDefaultInt("UPSTREAM_RETRY_MAX", 5), 0),
		UpstreamRetryBaseDelay: envOrDefaultDuration("UPSTREAM_RETRY_BASE_DELAY", 1*time.Second),
		UpstreamTimeout:        envOrDefaultDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		RequestTimeout:         envOrDefaultDuration("REQUEST_TIMEOUT", 60*time.Second),
		FanoutConcurrency:      fanout.ClampLimit(envOrDefaultInt("FANOUT_CONCURRENCY", fanout.DefaultLimit)),
		RegistryCacheTTL:       envOrDefaultDuration("REGISTRY_CACHE_TTL", 0),
		MetricsNamespace:       envOrDefault("METRICS_NAMESPACE", "cardano_api"),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
