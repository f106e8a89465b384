package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/platform/resilience"
	"github.com/scorelinehq/sportsfeed/internal/providers"
	"github.com/scorelinehq/sportsfeed/internal/registry"
)

const defaultLiveWorkers = 4

// allSports is the fan-out set when a live query names no sports.
var allSports = []string{
	event.SportNFL,
	event.SportCollegeFootball,
	event.SportNBA,
	event.SportCollegeBasket,
	event.SportMLB,
}

// EventsQuery is one caller request for a sport's events.
type EventsQuery struct {
	Sport   string
	Filters event.Filters
	// PreferredProvider moves the named provider to the front of the
	// fallback chain; the remaining order is unchanged.
	PreferredProvider string
}

// ProviderHealth is the reportable state of one provider: its registration
// plus the live breaker and limiter counters.
type ProviderHealth struct {
	Name        string    `json:"name"`
	Priority    int       `json:"priority"`
	Sports      []string  `json:"sports"`
	Healthy     bool      `json:"healthy"`
	CircuitOpen bool      `json:"circuit_open"`
	Failures    int       `json:"failures"`
	LastFailure time.Time `json:"last_failure"`
	LastSuccess time.Time `json:"last_success"`
	WindowCount int       `json:"window_count"`
	WindowReset time.Time `json:"window_reset"`
	DailyCount  int       `json:"daily_count"`
	DailyLimit  int       `json:"daily_limit,omitempty"`
}

type AggregatorConfig struct {
	FailureThreshold int
	Cooldown         time.Duration
	LiveWorkers      int
	Logger           *logging.Logger
}

// AggregatorService orchestrates the provider fallback chain. Providers are
// tried in priority order until one answers; results are never merged across
// providers. Breaker and limiter state is per process.
type AggregatorService struct {
	registry *registry.Registry
	adapters map[string]providers.Adapter
	breakers map[string]*resilience.CircuitBreaker
	limiters map[string]*resilience.RateLimiter

	logger      *logging.Logger
	liveWorkers int
	now         func() time.Time
}

func NewAggregatorService(reg *registry.Registry, adapters []providers.Adapter, cfg AggregatorConfig) *AggregatorService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	liveWorkers := cfg.LiveWorkers
	if liveWorkers < 1 {
		liveWorkers = defaultLiveWorkers
	}

	s := &AggregatorService{
		registry:    reg,
		adapters:    make(map[string]providers.Adapter, len(adapters)),
		breakers:    make(map[string]*resilience.CircuitBreaker),
		limiters:    make(map[string]*resilience.RateLimiter),
		logger:      logger,
		liveWorkers: liveWorkers,
		now:         time.Now,
	}

	for _, adapter := range adapters {
		s.adapters[strings.ToLower(adapter.Name())] = adapter
	}
	for _, registration := range reg.All() {
		s.breakers[registration.Name] = resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.Cooldown)
		s.limiters[registration.Name] = resilience.NewRateLimiter(
			registration.RateLimit.MaxRequests,
			registration.RateLimit.Window,
			registration.RateLimit.DailyLimit,
		)
	}

	return s
}

// GetEvents walks the fallback chain for one sport and returns the first
// successful provider's events.
func (s *AggregatorService) GetEvents(ctx context.Context, query EventsQuery) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "AggregatorService.GetEvents")
	defer span.End()

	sport := event.NormalizeSport(query.Sport)
	if !event.IsKnownSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, query.Sport)
	}
	if query.Filters.Date != "" {
		if _, err := time.Parse(event.DateLayout, query.Filters.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYYMMDD, got %q", ErrInvalidInput, query.Filters.Date)
		}
	}
	if query.Filters.Week < 0 {
		return nil, fmt.Errorf("%w: week must not be negative", ErrInvalidInput)
	}

	candidates, err := s.orderCandidates(sport, query.PreferredProvider)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no providers registered for sport=%s", ErrProvidersExhausted, sport)
	}

	attempted := 0
	for _, candidate := range candidates {
		adapter, ok := s.adapters[candidate.Name]
		if !ok {
			s.logger.WarnContext(ctx, "registered provider has no adapter", "provider", candidate.Name)
			continue
		}
		if s.breakers[candidate.Name].IsOpen() {
			s.logger.DebugContext(ctx, "skipping provider, circuit open", "provider", candidate.Name, "sport", sport)
			continue
		}
		limiter := s.limiters[candidate.Name]
		if limiter.IsLimited() {
			s.logger.DebugContext(ctx, "skipping provider, rate limited", "provider", candidate.Name, "sport", sport)
			continue
		}

		limiter.RecordAttempt()
		events, err := adapter.FetchEvents(ctx, sport, query.Filters)
		attempted++
		if err != nil {
			s.breakers[candidate.Name].RecordFailure()
			s.logger.WarnContext(ctx, "provider fetch failed", "provider", candidate.Name, "sport", sport, "error", err)
			continue
		}

		s.breakers[candidate.Name].RecordSuccess()
		return events, nil
	}

	return nil, fmt.Errorf("%w: sport=%s providers=%d attempted=%d", ErrProvidersExhausted, sport, len(candidates), attempted)
}

// GetTodaysEvents is GetEvents with the date filter defaulted to the current
// UTC day.
func (s *AggregatorService) GetTodaysEvents(ctx context.Context, query EventsQuery) ([]event.Event, error) {
	if query.Filters.Date == "" {
		query.Filters.Date = s.now().UTC().Format(event.DateLayout)
	}
	return s.GetEvents(ctx, query)
}

// GetLiveEvents fans out across sports concurrently and returns every event
// currently in progress. A sport whose whole chain fails contributes zero
// events; the call itself never fails on provider errors.
func (s *AggregatorService) GetLiveEvents(ctx context.Context, sports []string) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "AggregatorService.GetLiveEvents")
	defer span.End()

	if len(sports) == 0 {
		sports = allSports
	}
	normalized := make([]string, 0, len(sports))
	for _, sport := range sports {
		sport = event.NormalizeSport(sport)
		if !event.IsKnownSport(sport) {
			return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
		}
		normalized = append(normalized, sport)
	}

	today := s.now().UTC().Format(event.DateLayout)

	workerCount := s.liveWorkers
	if workerCount > len(normalized) {
		workerCount = len(normalized)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan []event.Event, len(normalized))

	var workers sync.WaitGroup
	for _, sport := range normalized {
		sport := sport
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			events, err := s.GetEvents(ctx, EventsQuery{Sport: sport, Filters: event.Filters{Date: today}})
			if err != nil {
				s.logger.WarnContext(ctx, "live fetch degraded for sport", "sport", sport, "error", err)
				return
			}
			results <- events
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit sport to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	live := make([]event.Event, 0)
	for events := range results {
		for _, e := range events {
			if event.IsLiveStatus(e.Status) {
				live = append(live, e)
			}
		}
	}

	sort.SliceStable(live, func(i, j int) bool {
		if live[i].Sport != live[j].Sport {
			return live[i].Sport < live[j].Sport
		}
		return live[i].StartTime.Before(live[j].StartTime)
	})
	return live, nil
}

// ProviderHealth reports every registered provider in priority order.
func (s *AggregatorService) ProviderHealth() []ProviderHealth {
	registrations := s.registry.All()
	out := make([]ProviderHealth, 0, len(registrations))
	for _, reg := range registrations {
		breaker := s.breakers[reg.Name].Snapshot()
		limiter := s.limiters[reg.Name].Snapshot()
		out = append(out, ProviderHealth{
			Name:        reg.Name,
			Priority:    reg.Priority,
			Sports:      reg.Sports,
			Healthy:     !breaker.Open,
			CircuitOpen: breaker.Open,
			Failures:    breaker.Failures,
			LastFailure: breaker.LastFailure,
			LastSuccess: breaker.LastSuccess,
			WindowCount: limiter.WindowCount,
			WindowReset: limiter.WindowReset,
			DailyCount:  limiter.DailyCount,
			DailyLimit:  limiter.DailyLimit,
		})
	}
	return out
}

// ResetProvider force-closes one provider's breaker, an operational override
// for a provider known to have recovered.
func (s *AggregatorService) ResetProvider(name string) error {
	breaker, ok := s.breakers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("%w: provider=%s", ErrNotFound, name)
	}
	breaker.Reset()
	s.logger.Info("provider circuit reset", "provider", name)
	return nil
}

// orderCandidates returns the sport's fallback chain, with the preferred
// provider moved to the front when named.
func (s *AggregatorService) orderCandidates(sport, preferred string) ([]registry.Registration, error) {
	candidates := s.registry.CandidatesFor(sport)

	preferred = strings.ToLower(strings.TrimSpace(preferred))
	if preferred == "" {
		return candidates, nil
	}
	if _, ok := s.registry.Get(preferred); !ok {
		return nil, fmt.Errorf("%w: provider=%s", ErrNotFound, preferred)
	}

	ordered := make([]registry.Registration, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Name == preferred {
			ordered = append(ordered, candidate)
		}
	}
	for _, candidate := range candidates {
		if candidate.Name != preferred {
			ordered = append(ordered, candidate)
		}
	}
	return ordered, nil
}
