package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"punctual/internal/models"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultPath = "/schedule-sms"
	AlertsPath  = "/alerts"
)

// ErrTransportFailure covers every way the scheduling call can go wrong:
// network errors, non-2xx statuses and bodies that don't decode.
var ErrTransportFailure = errors.New("scheduling service request failed")

type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	log      zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds a whole call. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL, path string, opts ...Option) *Client {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + path,
		http:     &http.Client{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Schedule posts one payload. There is no retry.
func (c *Client) Schedule(ctx context.Context, payload models.OutboundPayload) (models.ScheduleResponse, error) {
	op := "scheduler.Schedule"

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return models.ScheduleResponse{}, fmt.Errorf("%s: marshal failed: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return models.ScheduleResponse{}, c.fail(op, fmt.Errorf("request create failed: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return models.ScheduleResponse{}, c.fail(op, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.ScheduleResponse{}, c.fail(op, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var out models.ScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ScheduleResponse{}, c.fail(op, fmt.Errorf("decode failed: %w", err))
	}

	c.log.Debug().
		Str("op", op).
		Str("endpoint", c.endpoint).
		Int("scheduled", out.Scheduled).
		Dur("took", time.Since(start)).
		Msg("scheduling service accepted request")

	return out, nil
}

func (c *Client) fail(op string, cause error) error {
	c.log.Error().Str("op", op).Str("endpoint", c.endpoint).Err(cause).Msg("scheduling service call failed")
	return fmt.Errorf("%s: %w: %w", op, ErrTransportFailure, cause)
}
