package skyq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ScheduleFetcher is implemented by *Client and faked in tests.
type ScheduleFetcher interface {
	Schedule(ctx context.Context) ([]Entry, error)
}

var _ ScheduleFetcher = (*Client)(nil)

const (
	// DefaultLimit is the page size used for the schedule window.
	DefaultLimit = 50

	defaultTimeout     = 5 * time.Second
	defaultCountMaxAge = 30 * time.Second
	defaultUserAgent   = "skyschedule/0.1"
	pvrPath            = "/as/pvr"
)

// Options configure a Client. The zero value is valid.
type Options struct {
	Limit       int           // page size; zero uses DefaultLimit
	Timeout     time.Duration // per request; zero uses 5s
	Boundary    DayBoundary
	CountMaxAge time.Duration // how long the probe count is reused; zero uses 30s, negative never reuses
	Port        int           // zero uses DefaultPort
	HTTPClient  *http.Client
	Logger      *zerolog.Logger // nil disables logging
	Now         func() time.Time
}

// Client reads the PVR list of one Sky Q box.
type Client struct {
	endpoint    Endpoint
	baseURL     *url.URL
	http        *http.Client
	limit       int
	timeout     time.Duration
	boundary    DayBoundary
	countMaxAge time.Duration
	now         func() time.Time
	log         zerolog.Logger

	mu        sync.Mutex
	count     int
	countedAt time.Time
}

// NewClient validates address and probes the box once. It returns no client
// when the address is invalid or the box does not answer the probe.
func NewClient(ctx context.Context, address string, opts Options) (*Client, error) {
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	endpoint, err := newEndpoint(address, port)
	if err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if err := opts.Boundary.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:    endpoint,
		baseURL:     endpoint.baseURL(),
		http:        opts.HTTPClient,
		limit:       limit,
		timeout:     opts.Timeout,
		boundary:    opts.Boundary,
		countMaxAge: opts.CountMaxAge,
		now:         opts.Now,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.countMaxAge == 0 {
		c.countMaxAge = defaultCountMaxAge
	}
	if c.now == nil {
		c.now = time.Now
	}
	base := zerolog.Nop()
	if opts.Logger != nil {
		base = *opts.Logger
	}
	c.log = base.With().Str("device", endpoint.String()).Logger()
	if c.boundary.Location == nil {
		c.boundary.Location = time.Local
	}

	if _, err := c.Count(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Endpoint returns the device address.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// Limit returns the page size.
func (c *Client) Limit() int { return c.limit }

// Boundary returns the day boundary used to cut the schedule, with its
// location resolved.
func (c *Client) Boundary() DayBoundary { return c.boundary }

// Count probes the box for its total number of PVR items and caches the
// result.
func (c *Client) Count(ctx context.Context) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload pvrResponse
	if err := c.get(ctx, "probe", 0, 0, &payload); err != nil {
		return 0, err
	}
	if payload.TotalPvrItems == nil {
		return 0, unreachable("probe", 0, errors.New("response has no totalPvrItems"))
	}
	total := *payload.TotalPvrItems

	c.mu.Lock()
	c.count = total
	c.countedAt = c.now()
	c.mu.Unlock()

	c.log.Debug().Int("total", total).Msg("pvr probe")
	return total, nil
}

// Schedule returns today's scheduled recordings ordered by start time. It
// fails as a whole; no partial schedule is returned.
func (c *Client) Schedule(ctx context.Context) ([]Entry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	total, err := c.total(ctx)
	if err != nil {
		return nil, err
	}
	offset := Offset(total, c.limit)

	var payload pvrResponse
	if err := c.get(ctx, "fetch", c.limit, offset, &payload); err != nil {
		return nil, err
	}
	if payload.PvrItems == nil {
		return nil, unreachable("fetch", 0, errors.New("response has no pvrItems"))
	}
	items := *payload.PvrItems

	schedule := BuildSchedule(items, c.now(), c.boundary)
	c.log.Debug().
		Int("total", total).
		Int("offset", offset).
		Int("fetched", len(items)).
		Int("today", len(schedule)).
		Msg("schedule fetched")
	return schedule, nil
}

// total returns the cached probe count while it is fresh and probes again
// otherwise.
func (c *Client) total(ctx context.Context) (int, error) {
	c.mu.Lock()
	count, at := c.count, c.countedAt
	c.mu.Unlock()

	if c.countMaxAge > 0 && !at.IsZero() && c.now().Sub(at) < c.countMaxAge {
		return count, nil
	}
	return c.Count(ctx)
}

func (c *Client) get(ctx context.Context, op string, limit, offset int, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(offset))
	rel := &url.URL{Path: pvrPath, RawQuery: values.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return unreachable(op, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return unreachable(op, 0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return unreachable(op, resp.StatusCode, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return unreachable(op, 0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
