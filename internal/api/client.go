// Package api sends requests to the content API and maps failures to
// NetworkError and HTTPError.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogersnm/dolphin/internal/codec"
	"github.com/rs/zerolog"
)

const DefaultTimeout = 10 * time.Second

// Tokens supplies and clears the bearer credential.
type Tokens interface {
	Resolve() (string, bool)
	Invalidate() error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  Tokens
	// OnUnauthorized runs after credentials are cleared on a 401. It is the
	// sign-in redirect.
	OnUnauthorized func()
	Logger         *zerolog.Logger
	Metrics        *Metrics
	HTTPClient     *http.Client
}

type Client struct {
	baseURL        string
	timeout        time.Duration
	tokens         Tokens
	onUnauthorized func()
	log            zerolog.Logger
	metrics        *Metrics
	http           *http.Client
}

func New(cfg Config) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        cfg.Timeout,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
		log:            zerolog.Nop(),
		metrics:        cfg.Metrics,
		http:           cfg.HTTPClient,
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

type Request struct {
	Method string
	Path   string
	Body   codec.Body
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Send performs one request. It never retries.
func (c *Client) Send(ctx context.Context, r Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + r.Path
	req, err := http.NewRequestWithContext(ctx, r.Method, url, r.Body.Reader())
	if err != nil {
		return nil, &NetworkError{Method: r.Method, URL: url, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if r.Body.Kind != codec.KindNone {
		req.Header.Set("Content-Type", r.Body.ContentType)
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.Resolve(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(r.Method, 0, time.Since(start))
		c.log.Debug().Str("request_id", reqID).Str("method", r.Method).Str("path", r.Path).Err(err).Msg("request failed")
		return nil, &NetworkError{Method: r.Method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.observe(r.Method, resp.StatusCode, elapsed)
	if err != nil {
		return nil, &NetworkError{Method: r.Method, URL: url, Err: err}
	}
	c.log.Debug().
		Str("request_id", reqID).
		Str("method", r.Method).
		Str("path", r.Path).
		Str("body", r.Body.Kind.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("api request")

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
		return nil, &HTTPError{Status: resp.StatusCode, Body: body, Message: ServerMessage(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: body, Message: ServerMessage(body)}
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) unauthorized() {
	if c.tokens != nil {
		if err := c.tokens.Invalidate(); err != nil {
			c.log.Warn().Err(err).Msg("clearing credentials")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
