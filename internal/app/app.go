package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scorelinehq/sportsfeed/internal/config"
	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/interfaces/httpapi"
	"github.com/scorelinehq/sportsfeed/internal/platform/cache"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/providers"
	"github.com/scorelinehq/sportsfeed/internal/providers/cfbd"
	"github.com/scorelinehq/sportsfeed/internal/providers/espn"
	"github.com/scorelinehq/sportsfeed/internal/providers/sportsdataio"
	"github.com/scorelinehq/sportsfeed/internal/providers/thesportsdb"
	"github.com/scorelinehq/sportsfeed/internal/registry"
	"github.com/scorelinehq/sportsfeed/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	store := newCache(cfg, logger)

	adapters, registrations := buildProviders(cfg, logger, store)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no providers enabled")
	}

	aggregator := usecase.NewAggregatorService(registry.New(registrations...), adapters, usecase.AggregatorConfig{
		FailureThreshold: cfg.CircuitFailureThreshold,
		Cooldown:         cfg.CircuitCooldown,
		LiveWorkers:      cfg.LiveWorkers,
		Logger:           logger,
	})

	handler := httpapi.NewHandler(aggregator, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalAdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// newCache builds the shared response cache. A redis backend that cannot be
// reached at startup degrades to the in-process store rather than failing
// boot.
func newCache(cfg config.Config, logger *logging.Logger) cache.Cache {
	if cfg.CacheBackend != config.CacheBackendRedis {
		return cache.NewStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := cache.NewRedisStore(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
		return cache.NewStore()
	}

	logger.Info("redis cache enabled", "addr", cfg.RedisAddr)
	return store
}

func buildProviders(cfg config.Config, logger *logging.Logger, store cache.Cache) ([]providers.Adapter, []registry.Registration) {
	adapters := make([]providers.Adapter, 0, 4)
	registrations := make([]registry.Registration, 0, 4)

	register := func(adapter providers.Adapter, pc config.ProviderConfig, sports []string) {
		adapters = append(adapters, adapter)
		registrations = append(registrations, registry.Registration{
			Name:     adapter.Name(),
			Priority: pc.Priority,
			Sports:   sports,
			RateLimit: registry.RateLimitSpec{
				MaxRequests: pc.MaxRequests,
				Window:      pc.Window,
				DailyLimit:  pc.DailyLimit,
			},
		})
	}

	if cfg.ESPN.Enabled {
		register(espn.NewClient(espn.ClientConfig{
			BaseURL:  cfg.ESPN.BaseURL,
			Timeout:  cfg.ESPN.Timeout,
			Logger:   logger,
			Cache:    store,
			CacheTTL: cfg.CacheTTL,
		}), cfg.ESPN, []string{
			event.SportNFL,
			event.SportCollegeFootball,
			event.SportNBA,
			event.SportCollegeBasket,
			event.SportMLB,
		})
	}

	if cfg.SportsDataIO.Enabled {
		register(sportsdataio.NewClient(sportsdataio.ClientConfig{
			BaseURL: cfg.SportsDataIO.BaseURL,
			APIKey:  cfg.SportsDataIO.APIKey,
			Timeout: cfg.SportsDataIO.Timeout,
			Logger:  logger,
		}), cfg.SportsDataIO, []string{
			event.SportNFL,
			event.SportCollegeFootball,
			event.SportNBA,
			event.SportMLB,
		})
	}

	if cfg.CFBD.Enabled {
		register(cfbd.NewClient(cfbd.ClientConfig{
			BaseURL: cfg.CFBD.BaseURL,
			APIKey:  cfg.CFBD.APIKey,
			Timeout: cfg.CFBD.Timeout,
			Logger:  logger,
		}), cfg.CFBD, []string{
			event.SportCollegeFootball,
		})
	}

	if cfg.TheSportsDB.Enabled {
		register(thesportsdb.NewClient(thesportsdb.ClientConfig{
			BaseURL:  cfg.TheSportsDB.BaseURL,
			APIKey:   cfg.TheSportsDB.APIKey,
			Timeout:  cfg.TheSportsDB.Timeout,
			Logger:   logger,
			Cache:    store,
			CacheTTL: cfg.CacheTTL,
		}), cfg.TheSportsDB, []string{
			event.SportNFL,
			event.SportNBA,
			event.SportMLB,
			event.SportCollegeFootball,
			event.SportCollegeBasket,
		})
	}

	return adapters, registrations
}
