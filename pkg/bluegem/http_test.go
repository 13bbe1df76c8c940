package bluegem

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

type observation struct {
	route   Route
	status  int
	outcome string
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveRequest(route Route, status int, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{route: route, status: status, outcome: outcome})
}

func (r *recordingObserver) all() []observation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]observation(nil), r.obs...)
}

func compressBrotli(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func compressGzip(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReadPayload_ContentEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		encoding string
		body     func(t *testing.T) []byte
	}{
		{name: "identity", encoding: "", body: func(*testing.T) []byte { return []byte("1500") }},
		{name: "brotli", encoding: "br", body: func(t *testing.T) []byte { return compressBrotli(t, "1500") }},
		{name: "gzip", encoding: "gzip", body: func(t *testing.T) []byte { return compressGzip(t, "1500") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := tt.body(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "br, gzip", r.Header.Get("Accept-Encoding"))
				w.Header().Set("Content-Type", "application/json")
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				_, _ = w.Write(body)
			}))
			t.Cleanup(srv.Close)

			c := New(WithBaseURL(srv.URL))
			t.Cleanup(func() { _ = c.Close() })

			price, err := c.PriceCheck(context.Background(), domain.Karambit, 1, 0.5)
			require.NoError(t, err)
			assert.Equal(t, 1500, price)
		})
	}
}

func TestReadPayload_MediaTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    payloadKind
	}{
		{name: "json", contentType: "application/json", body: `{"a":1}`, wantKind: payloadJSON},
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `[1]`, wantKind: payloadJSON},
		{name: "octet stream", contentType: "application/octet-stream", body: "\x00\x01", wantKind: payloadBytes},
		{name: "text", contentType: "text/plain", body: "hi", wantKind: payloadText},
		{name: "missing content type", contentType: "", body: "hi", wantKind: payloadText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": {tt.contentType}},
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			p, err := readPayload(resp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, p.kind)
			assert.Equal(t, []byte(tt.body), p.raw)
		})
	}
}

func TestReadPayload_MalformedJSONOnSuccess(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader("{")),
	}

	_, err := readPayload(resp)
	require.ErrorIs(t, err, ErrDecode)
}

func TestClassify_TruncatesLongText(t *testing.T) {
	t.Parallel()

	err := classify(&payload{status: http.StatusBadGateway, kind: payloadText, text: strings.Repeat("x", 500)})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Len(t, apiErr.Message, maxMessageLen)
	assert.True(t, strings.HasSuffix(apiErr.Message, "..."))
}

func TestClassify_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", maxMessageLen-4) + strings.Repeat("é", 5)
	err := classify(&payload{status: http.StatusInternalServerError, kind: payloadText, text: text})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, utf8.ValidString(apiErr.Message), "message %q is not valid UTF-8", apiErr.Message)
	assert.LessOrEqual(t, len(apiErr.Message), maxMessageLen)
	assert.Equal(t, strings.Repeat("a", maxMessageLen-4)+"...", apiErr.Message)
}

func TestNew_PrivateTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`42`))
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		hc   *http.Client
	}{
		{name: "no client"},
		{name: "client without transport", hc: &http.Client{Timeout: 5 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := []Option{WithBaseURL(srv.URL)}
			if tt.hc != nil {
				opts = append(opts, WithHTTPClient(tt.hc))
			}
			c := New(opts...)

			rt := c.http.client.Transport
			require.NotNil(t, rt)
			assert.NotSame(t, http.DefaultTransport, rt)
			if tt.hc != nil {
				assert.Nil(t, tt.hc.Transport, "caller's client must not be modified")
				assert.NotSame(t, tt.hc, c.http.client)
				assert.Equal(t, tt.hc.Timeout, c.http.client.Timeout)
			}

			price, err := c.PriceCheck(context.Background(), domain.Karambit, 1, 0.5)
			require.NoError(t, err)
			assert.Equal(t, 42, price)
			require.NoError(t, c.Close())
		})
	}
}

func TestNew_KeepsSuppliedTransport(t *testing.T) {
	t.Parallel()

	rt := &http.Transport{}
	hc := &http.Client{Transport: rt}
	c := New(WithHTTPClient(hc))
	t.Cleanup(func() { _ = c.Close() })

	assert.Same(t, hc, c.http.client)
	assert.Same(t, rt, c.http.client.Transport)
}

func TestClassify_NullMessageIsIgnored(t *testing.T) {
	t.Parallel()

	err := classify(&payload{status: http.StatusOK, kind: payloadJSON, json: map[string]any{"message": nil}})
	assert.NoError(t, err)
}

func TestObserver(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{}`))
		case "/patterndata":
			_, _ = w.Write([]byte(`{"meta": {"size": 0, "total": 0}}`))
		default:
			_, _ = w.Write([]byte(`12`))
		}
	}))
	t.Cleanup(srv.Close)

	rec := &recordingObserver{}
	c := New(WithBaseURL(srv.URL), WithObserver(rec))
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	_, _ = c.Search(ctx, domain.Karambit, nil)
	_, _ = c.PatternData(ctx, domain.Karambit, nil)
	_, _ = c.PriceCheck(ctx, domain.Karambit, 1, 0.5)
	_, _ = c.PriceCheck(ctx, domain.Karambit, 1001, 0.5)

	// Payload decoding happens after the transport observed a 200.
	assert.Equal(t, []observation{
		{route: routeSearch, status: http.StatusServiceUnavailable, outcome: "server_error"},
		{route: routePatternData, status: http.StatusOK, outcome: "ok"},
		{route: routePriceCheck, status: http.StatusOK, outcome: "ok"},
	}, rec.all())
}

func TestTracing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`99`))
	}))
	t.Cleanup(srv.Close)

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := New(WithBaseURL(srv.URL), WithTracerProvider(tp))
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.PriceCheck(context.Background(), domain.Karambit, 1, 0.5)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), domain.Karambit, nil)
	require.ErrorIs(t, err, ErrNotFound)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "bluegem GET /pricecheck", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("http.response.status_code", http.StatusOK))

	assert.Equal(t, "bluegem GET /search", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "not_found", spans[1].Status().Description)
	assert.Contains(t, spans[1].Attributes(), attribute.String("url.path", "/search"))
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "ok"},
		{name: "invalid request", err: &APIError{Kind: ErrInvalidRequest}, want: "invalid_request"},
		{name: "not found", err: &APIError{Kind: ErrNotFound}, want: "not_found"},
		{name: "server error", err: &APIError{Kind: ErrServerError}, want: "server_error"},
		{name: "other http", err: &APIError{Kind: ErrHTTP}, want: "http_error"},
		{name: "decode", err: &DecodeError{Field: "x"}, want: "decode_error"},
		{name: "transport", err: errors.New("connection refused"), want: "transport_error"},
		{name: "wrapped transport", err: &TransportError{Op: "sending request", Err: context.Canceled}, want: "transport_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, outcomeOf(tt.err))
		})
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	r := NewRoute(http.MethodGet, "/search")
	assert.Equal(t, http.MethodGet, r.Method())
	assert.Equal(t, "/search", r.Path())
	assert.Equal(t, "GET /search", r.String())
	assert.Equal(t, routeSearch, r)
}
