package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	ProviderName   = "espn"
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	scoreboardMax  = 300
	userAgent      = "sportsfeed/1.0"
)

// sportPaths maps canonical sport keys onto ESPN's path segments. Sport
// naming never leaks past this table.
var sportPaths = map[string]string{
	event.SportNFL:             "football/nfl",
	event.SportCollegeFootball: "football/college-football",
	event.SportNBA:             "basketball/nba",
	event.SportCollegeBasket:   "basketball/mens-college-basketball",
	event.SportMLB:             "baseball/mlb",
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
	Cache      cache.Cache
	CacheTTL   time.Duration
}

// Client fetches scoreboard data from ESPN's public site API. No API key is
// required; responses are cached read-through against the shared cache when
// one is configured.
type Client struct {
	httpClient *http.Client
	baseURL    string
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

	store := cfg.Cache
	if store == nil {
		store = cache.Nop{}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		cache:      store,
		cacheTTL:   cfg.CacheTTL,
		now:        time.Now,
	}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) Supports(sport string) bool {
	_, ok := sportPaths[event.NormalizeSport(sport)]
	return ok
}

func (c *Client) FetchEvents(ctx context.Context, sport string, filters event.Filters) ([]event.Event, error) {
	sport = event.NormalizeSport(sport)
	path, ok := sportPaths[sport]
	if !ok {
		return nil, crerr.Wrapf(providers.ErrUnsupportedSport, "%s: %s", ProviderName, sport)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(scoreboardMax))
	if filters.Date != "" {
		query.Set("dates", filters.Date)
	}
	if filters.Week > 0 {
		query.Set("week", strconv.Itoa(filters.Week))
	}
	if filters.Conference != "" {
		query.Set("groups", filters.Conference)
	}

	fullURL := fmt.Sprintf("%s/%s/scoreboard?%s", c.baseURL, path, query.Encode())

	raw, err := c.fetchRaw(ctx, fullURL, filters.CacheKey(ProviderName, sport))
	if err != nil {
		return nil, err
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrap(err, "decode scoreboard payload")
	}

	out := mapScoreboard(envelope, sport, c.now().UTC())
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
	req.Header.Set("user-agent", userAgent)

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
		c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, crerr.Newf("espn status=%d", resp.StatusCode)
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
