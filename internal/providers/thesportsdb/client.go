package thesportsdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/cache"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/platform/resilience"
	"github.com/scorelinehq/sportsfeed/internal/providers"
)

const (
	ProviderName   = "thesportsdb"
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	dayLayout      = "2006-01-02"
)

// leagueNames maps canonical sport keys onto TheSportsDB league names used by
// the eventsday listing.
var leagueNames = map[string]string{
	event.SportNFL:             "NFL",
	event.SportNBA:             "NBA",
	event.SportMLB:             "MLB",
	event.SportCollegeFootball: "NCAA Division 1 Football",
	event.SportCollegeBasket:   "NCAA Division 1 Basketball",
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
	Cache      cache.Cache
	CacheTTL   time.Duration
}

// Client fetches day listings from TheSportsDB. The API keys requests by
// embedding the key as a URL path segment, so request URLs are never logged
// verbatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	cache      cache.Cache
	cacheTTL   time.Duration
	flight     resilience.SingleFlight
	now        func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		// Shared community key with tight upstream limits.
		apiKey = "3"
	}

	store := cfg.Cache
	if store == nil {
		store = cache.Nop{}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
		cache:      store,
		cacheTTL:   cfg.CacheTTL,
		now:        time.Now,
	}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) Supports(sport string) bool {
	_, ok := leagueNames[event.NormalizeSport(sport)]
	return ok
}

func (c *Client) FetchEvents(ctx context.Context, sport string, filters event.Filters) ([]event.Event, error) {
	sport = event.NormalizeSport(sport)
	league, ok := leagueNames[sport]
	if !ok {
		return nil, crerr.Wrapf(providers.ErrUnsupportedSport, "%s: %s", ProviderName, sport)
	}

	date := filters.Date
	if date == "" {
		date = c.now().UTC().Format(event.DateLayout)
	}
	parsed, err := time.Parse(event.DateLayout, date)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse date filter %q", date)
	}

	query := url.Values{}
	query.Set("d", parsed.Format(dayLayout))
	query.Set("l", league)

	fullURL := fmt.Sprintf("%s/%s/eventsday.php?%s", c.baseURL, c.apiKey, query.Encode())

	raw, err := c.fetchRaw(ctx, fullURL, filters.CacheKey(ProviderName, sport))
	if err != nil {
		return nil, err
	}

	var envelope eventsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode eventsday payload")
	}

	out := mapEnvelope(envelope, sport, c.now().UTC())
	if filters.TeamID != "" {
		out = filterByTeam(out, filters.TeamID)
	}
	return out, nil
}

func (c *Client) fetchRaw(ctx context.Context, fullURL, cacheKey string) ([]byte, error) {
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		return cached, nil
	}

	// Concurrent identical queries share one upstream call.
	raw, err, _ := c.flight.Do(cacheKey, func() ([]byte, error) {
		return c.executeRequest(ctx, fullURL, cacheKey)
	})
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL, cacheKey string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "send request")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, crerr.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "thesportsdb request failed", "path", req.URL.Path[strings.LastIndex(req.URL.Path, "/"):], "status", resp.StatusCode)
		return nil, crerr.Newf("thesportsdb status=%d", resp.StatusCode)
	}

	if c.cacheTTL > 0 {
		c.cache.Set(ctx, cacheKey, raw, c.cacheTTL)
	}
	return raw, nil
}

func filterByTeam(events []event.Event, teamID string) []event.Event {
	out := events[:0]
	for _, e := range events {
		if e.HomeTeam.ID == teamID || e.AwayTeam.ID == teamID {
			out = append(out, e)
		}
	}
	return out
}
