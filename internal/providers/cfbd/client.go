package cfbd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/scorelinehq/sportsfeed/internal/domain/event"
	"github.com/scorelinehq/sportsfeed/internal/platform/logging"
	"github.com/scorelinehq/sportsfeed/internal/providers"
)

const (
	ProviderName   = "cfbd"
	defaultBaseURL = "https://api.collegefootballdata.com"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client fetches college football games from CollegeFootballData. The API is
// season+week oriented; when the caller filters by date instead, the season is
// derived from the date and games are filtered client side.
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
	return event.NormalizeSport(sport) == event.SportCollegeFootball
}

func (c *Client) FetchEvents(ctx context.Context, sport string, filters event.Filters) ([]event.Event, error) {
	sport = event.NormalizeSport(sport)
	if sport != event.SportCollegeFootball {
		return nil, crerr.Wrapf(providers.ErrUnsupportedSport, "%s: %s", ProviderName, sport)
	}

	season := c.now().UTC().Year()
	var dateFilter time.Time
	if filters.Date != "" {
		parsed, err := time.Parse(event.DateLayout, filters.Date)
		if err != nil {
			return nil, crerr.Wrapf(err, "parse date filter %q", filters.Date)
		}
		dateFilter = parsed
		season = seasonForDate(parsed)
	}

	query := url.Values{}
	query.Set("year", strconv.Itoa(season))
	query.Set("division", "fbs")
	if filters.Week > 0 {
		query.Set("week", strconv.Itoa(filters.Week))
	}
	if filters.Conference != "" {
		query.Set("conference", filters.Conference)
	}

	fullURL := c.baseURL + "/games?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.apiKey)

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
		c.logger.WarnContext(ctx, "cfbd request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, crerr.Newf("cfbd status=%d", resp.StatusCode)
	}

	var rows []gameRow
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, crerr.Wrap(err, "decode games payload")
	}

	out := mapRows(rows, c.now().UTC())
	if !dateFilter.IsZero() {
		out = filterByDate(out, dateFilter)
	}
	if filters.TeamID != "" {
		out = filterByTeam(out, filters.TeamID)
	}
	return out, nil
}

// seasonForDate maps a calendar date onto a college football season: January
// bowl and playoff games belong to the prior year's season.
func seasonForDate(date time.Time) int {
	if date.Month() < time.March {
		return date.Year() - 1
	}
	return date.Year()
}

func filterByDate(events []event.Event, date time.Time) []event.Event {
	day := date.Format(event.DateLayout)
	out := events[:0]
	for _, e := range events {
		if !e.StartTime.IsZero() && e.StartTime.UTC().Format(event.DateLayout) == day {
			out = append(out, e)
		}
	}
	return out
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
