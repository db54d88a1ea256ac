package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/badfoxmc/cardano-api/internal/api"
	"github.com/badfoxmc/cardano-api/internal/blockfrost"
	"github.com/badfoxmc/cardano-api/internal/config"
	"github.com/badfoxmc/cardano-api/internal/ipfs"
	"github.com/badfoxmc/cardano-api/internal/market"
	"github.com/badfoxmc/cardano-api/internal/metrics"
	"github.com/badfoxmc/cardano-api/internal/policy"
	"github.com/badfoxmc/cardano-api/internal/pool"
	"github.com/badfoxmc/cardano-api/internal/rank"
	"github.com/badfoxmc/cardano-api/internal/registry"
	"github.com/badfoxmc/cardano-api/internal/token"
	"github.com/badfoxmc/cardano-api/internal/transaction"
	"github.com/badfoxmc/cardano-api/internal/wallet"
)

// services holds every query service built from one configuration.
type services struct {
	metrics      *metrics.Metrics
	wallets      *wallet.Service
	tokens       *token.Service
	policies     *policy.Enumerator
	pools        *pool.Service
	transactions *transaction.Service
	market       *market.Client
	cache        *registry.CachedLookup
}

func newServices(cfg config.Config) *services {
	m := metrics.New(cfg.MetricsNamespace, prometheus.NewRegistry())

	indexer := blockfrost.NewClient(cfg.BlockfrostURL, cfg.BlockfrostProjectID,
		cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay, cfg.UpstreamTimeout, m)

	var lookup registry.Lookup = registry.NewClient(cfg.TokenRegistryURL,
		cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay, cfg.UpstreamTimeout, m)
	var cache *registry.CachedLookup
	if cfg.RegistryCacheTTL > 0 {
		cache = registry.NewCachedLookup(lookup, cfg.RegistryCacheTTL)
		lookup = cache
	}

	ranks := rank.NewClient(cfg.RankProviderURL,
		cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay, cfg.UpstreamTimeout, m)
	marketClient := market.NewClient(cfg.MarketURL,
		cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay, cfg.UpstreamTimeout, m)

	normalizer := token.NewNormalizer(registry.NewResolver(lookup), ipfs.NewFormatter(cfg.IPFSGatewayURL))
	limit := cfg.FanoutConcurrency

	return &services{
		metrics:      m,
		wallets:      wallet.NewService(indexer, wallet.NewClassifier(nil), normalizer, limit, m),
		tokens:       token.NewService(indexer, normalizer, limit, m),
		policies:     policy.NewEnumerator(indexer, ranks, normalizer, limit, m),
		pools:        pool.NewService(indexer),
		transactions: transaction.NewService(indexer),
		market:       marketClient,
		cache:        cache,
	}
}

func (s *services) handler() *api.Handler {
	return api.NewHandler(api.Services{
		Wallets:      s.wallets,
		Tokens:       s.tokens,
		Policies:     s.policies,
		Pools:        s.pools,
		Transactions: s.transactions,
		Market:       s.market,
	})
}
