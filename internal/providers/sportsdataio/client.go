package sportsdataio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/providers"
)

const (
	ProviderName   = "sportsdataio"
	defaultBaseURL = "https://api.sportsdata.io/v3"
	apiKeyHeader   = "Ocp-Apim-Subscription-Key"

	// SportsDataIO encodes dates as 2017-SEP-25 style segments.
	pathDateLayout = "2006-Jan-02"
)

var sportPaths = map[string]string{
	event.SportNFL:             "nfl",
	event.SportCollegeFootball: "cfb",
	event.SportNBA:             "nba",
	event.SportMLB:             "mlb",
}

// weekSports fetch by season+week; the rest fetch by date.
var weekSports = map[string]bool{
	event.SportNFL:             true,
	event.SportCollegeFootball: true,
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client fetches scores listings from SportsDataIO. Authentication is a
// subscription-key header; the key never appears in URLs or log output.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
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

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
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

	fullURL, err := c.buildURL(path, sport, filters)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

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
		c.logger.WarnContext(ctx, "sportsdataio request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, crerr.Newf("sportsdataio status=%d", resp.StatusCode)
	}

	var rows []gameRow
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, crerr.Wrap(err, "decode scores payload")
	}

	out := mapRows(rows, sport, c.now().UTC())
	if filters.TeamID != "" {
		out = filterByTeam(out, filters.TeamID)
	}
	return out, nil
}

func (c *Client) buildURL(path, sport string, filters event.Filters) (string, error) {
	if weekSports[sport] && filters.Week > 0 {
		season := c.now().UTC().Year()
		if filters.Date != "" {
			parsed, err := time.Parse(event.DateLayout, filters.Date)
			if err != nil {
				return "", crerr.Wrapf(err, "parse date filter %q", filters.Date)
			}
			season = parsed.Year()
		}
		return fmt.Sprintf("%s/%s/scores/json/ScoresByWeek/%d/%d", c.baseURL, path, season, filters.Week), nil
	}

	date := filters.Date
	if date == "" {
		date = c.now().UTC().Format(event.DateLayout)
	}
	parsed, err := time.Parse(event.DateLayout, date)
	if err != nil {
		return "", crerr.Wrapf(err, "parse date filter %q", date)
	}
	segment := strings.ToUpper(parsed.Format(pathDateLayout))
	return fmt.Sprintf("%s/%s/scores/json/GamesByDate/%s", c.baseURL, path, segment), nil
}

func filterByTeam(events []event.Event, teamID string) []event.Event {
	out := events[:0]
	for _, e := range events {
		if strings.EqualFold(e.HomeTeam.ID, teamID) || strings.EqualFold(e.AwayTeam.ID, teamID) {
			out = append(out, e)
		}
	}
	return out
}
