package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogersnm/dolphin/internal/codec"
	"github.com/rogersnm/dolphin/internal/credstore"
	"github.com/rogersnm/dolphin/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, creds map[string]string) (*Client, *token.Provider, *int) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := token.New(credstore.NewMemoryStore(creds), nil)
	redirects := 0
	c := New(Config{
		BaseURL:        srv.URL + "/",
		Timeout:        time.Second,
		Tokens:         tokens,
		OnUnauthorized: func() { redirects++ },
	})
	return c, tokens, &redirects
}

func TestSend_AttachesHeaders(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/services", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(body))
		w.WriteHeader(201)
		w.Write([]byte(`{"data":{"id":1}}`))
	}, map[string]string{"access_token": "tok-1"})

	body, err := codec.JSON(map[string]int{"a": 1})
	require.NoError(t, err)
	resp, err := c.Send(context.Background(), Request{Method: "POST", Path: "/services", Body: body})
	require.NoError(t, err)
	assert.Equal(t, 201, resp.Status)
	assert.JSONEq(t, `{"data":{"id":1}}`, string(resp.Body))
}

func TestSend_NoTokenNoHeader(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.Write([]byte(`[]`))
	}, nil)

	_, err := c.Send(context.Background(), Request{Method: "GET", Path: "/faqs"})
	require.NoError(t, err)
}

func TestSend_401InvalidatesAndRedirects(t *testing.T) {
	calls := 0
	c, tokens, redirects := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Unauthenticated."}`))
	}, map[string]string{"access_token": "a", "token": "b"})

	_, err := c.Send(context.Background(), Request{Method: "GET", Path: "/services"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 401, he.Status)
	assert.Equal(t, "Unauthenticated.", he.Message)

	_, ok := tokens.Resolve()
	assert.False(t, ok)
	assert.Equal(t, 1, *redirects)
	assert.Equal(t, 1, calls, "401 must not be retried")
}

func TestSend_ServerErrorCarriesBody(t *testing.T) {
	c, _, redirects := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte("Route [login] not defined."))
	}, nil)

	_, err := c.Send(context.Background(), Request{Method: "GET", Path: "/services"})
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 500, he.Status)
	assert.Equal(t, "Route [login] not defined.", string(he.Body))
	assert.Equal(t, "API error 500: Route [login] not defined.", he.Error())
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 0, *redirects)
}

func TestSend_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Send(context.Background(), Request{Method: "GET", Path: "/slow"})
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
	assert.Contains(t, ne.Error(), "timed out")
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	_, err := c.Send(context.Background(), Request{Method: "GET", Path: "/x"})
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.False(t, ne.Timeout())
}

func TestSend_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Metrics: m})
	_, _ = c.Send(context.Background(), Request{Method: "GET", Path: "/ok"})
	_, _ = c.Send(context.Background(), Request{Method: "GET", Path: "/missing"})
	_, _ = c.Send(context.Background(), Request{Method: "GET", Path: "/ok"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "4xx")))
}

func TestServerMessage(t *testing.T) {
	cases := map[string]string{
		`{"message":"Not found"}`:                               "Not found",
		`{"error":"bad"}`:                                       "bad",
		`{"error":{"code":"X","message":"nested"}}`:             "nested",
		`{"errors":{"title_en":["The title en is required."]}}`: "The title en is required.",
		`plain text`:                     "plain text",
		`<html><body>oops</body></html>`: "",
		``:                               "",
	}
	for body, want := range cases {
		assert.Equal(t, want, ServerMessage([]byte(body)), body)
	}
}
