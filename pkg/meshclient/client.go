package meshclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/culturemesh/meshkit/pkg/events"
	"github.com/culturemesh/meshkit/pkg/logger"
	"github.com/culturemesh/meshkit/pkg/mesh"
)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the tuned default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger logs each request at debug level and retries at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.OrNope(l)
	}
}

// Client talks to the CultureMesh REST API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

var _ events.Source = (*Client)(nil)

// New validates cfg and returns a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		http:   newHTTPClient(cfg.Timeout),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// NetworksForUser returns up to limit networks the user belongs to.
func (c *Client) NetworksForUser(ctx context.Context, userID mesh.ID, limit int) ([]mesh.Network, error) {
	var out []mesh.Network
	if err := c.getJSON(ctx, "/user/"+userID.String()+"/networks", limit, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// EventsForNetwork returns up to limit events of a network.
func (c *Client) EventsForNetwork(ctx context.Context, networkID mesh.ID, limit int) ([]mesh.Event, error) {
	var out []mesh.Event
	if err := c.getJSON(ctx, "/network/"+networkID.String()+"/events", limit, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// User returns one user.
func (c *Client) User(ctx context.Context, id mesh.ID) (mesh.User, error) {
	var out mesh.User
	if err := c.getJSON(ctx, "/user/"+id.String(), -1, &out); err != nil {
		return mesh.User{}, err
	}
	return out, nil
}

// Event returns one event.
func (c *Client) Event(ctx context.Context, id mesh.ID) (mesh.Event, error) {
	var out mesh.Event
	if err := c.getJSON(ctx, "/event/"+id.String(), -1, &out); err != nil {
		return mesh.Event{}, err
	}
	return out, nil
}

// Ping checks that the API answers. Any response below 500 counts as up;
// it is not retried.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, c.endpoint("/", -1))
	var herr *HTTPError
	if errors.As(err, &herr) && herr.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}

// getJSON decodes GET {base}{path} into out. A negative count omits the
// count parameter.
func (c *Client) getJSON(ctx context.Context, path string, count int, out any) error {
	endpoint := c.endpoint(path, count)

	backoff := retry.WithMaxRetries(uint64(c.cfg.RetryAttempts-1), retry.NewConstant(c.cfg.RetryInterval))

	attempt := 0
	var raw []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		body, err := c.do(ctx, endpoint)
		if err == nil {
			raw = body
			return nil
		}
		if !retryable(ctx, err) {
			return err
		}

		c.logger.WarnContext(ctx, "meshclient request failed",
			slog.String("path", path),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "meshclient request",
		slog.String("path", path),
		slog.Int("count", count),
		slog.Int("bytes", len(raw)),
	)

	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

func (c *Client) endpoint(path string, count int) string {
	q := url.Values{}
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}
	if count >= 0 {
		q.Set("count", strconv.Itoa(count))
	}

	endpoint := c.cfg.BaseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	return endpoint
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, errors.Join(ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}

// retryable reports whether err is a transport failure or a temporary
// status. A cancelled caller is never retried.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Temporary()
	}
	return true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
