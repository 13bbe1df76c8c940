// Package bluegem provides a typed client for the CSBlueGem market-data API,
// abstracted behind the API interface for testability.
//
// A Client owns its HTTP session. Release it with Close, or use With to scope
// the client to a function:
//
//	err := bluegem.With(ctx, func(c *bluegem.Client) error {
//		resp, err := c.Search(ctx, domain.Karambit, &bluegem.SearchOptions{PatternData: true})
//		...
//	})
package bluegem

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// Version is the client library version reported in the User-Agent header.
const Version = "0.3.0"

const tracerName = "github.com/donaldgifford/bluegem/pkg/bluegem"

// API defines the operations offered by the CSBlueGem API.
type API interface {
	Search(ctx context.Context, item domain.Item, opts *SearchOptions) (*SearchResponse, error)
	PatternData(ctx context.Context, item domain.Item, opts *PatternDataOptions) (*PatternDataResponse, error)
	PriceCheck(ctx context.Context, item domain.Item, pattern int, wear float64) (int, error)
}

// Client implements API over HTTP. It is safe for concurrent use until Close
// is called.
type Client struct {
	http      *transport
	closed    atomic.Bool
	closeOnce sync.Once
}

var _ API = (*Client)(nil)

// Option configures the Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	logger         *slog.Logger
	observer       Observer
	tracerProvider trace.TracerProvider
}

// WithHTTPClient makes the Client use hc as its session. The Client takes
// ownership: Close releases hc's idle connections. If hc has no Transport,
// the Client uses a copy of hc with a private clone of
// http.DefaultTransport, and hc itself is left unchanged.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(u, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithObserver registers an Observer notified after every request.
func WithObserver(obs Observer) Option {
	return func(o *clientOptions) {
		o.observer = obs
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global
// provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *clientOptions) {
		o.tracerProvider = tp
	}
}

// DefaultUserAgent returns the User-Agent sent when none is configured.
func DefaultUserAgent() string {
	return fmt.Sprintf("bluegem-go v%s (Go %s; net/http)", Version, runtime.Version())
}

// New creates a Client and acquires its HTTP session.
func New(opts ...Option) *Client {
	o := &clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent(),
	}
	for _, opt := range opts {
		opt(o)
	}

	// A private transport so Close does not touch http.DefaultTransport.
	switch {
	case o.httpClient == nil:
		o.httpClient = &http.Client{Transport: defaultTransport()}
	case o.httpClient.Transport == nil:
		hc := *o.httpClient
		hc.Transport = defaultTransport()
		o.httpClient = &hc
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}

	return &Client{
		http: &transport{
			baseURL:   o.baseURL,
			userAgent: o.userAgent,
			client:    o.httpClient,
			logger:    o.logger,
			observer:  o.observer,
			tracer:    o.tracerProvider.Tracer(tracerName, trace.WithInstrumentationVersion(Version)),
		},
	}
}

func defaultTransport() http.RoundTripper {
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t.Clone()
	}
	return http.DefaultTransport
}

// With creates a Client, passes it to fn and closes it when fn returns,
// including when fn fails or panics.
func With(ctx context.Context, fn func(*Client) error, opts ...Option) (err error) {
	c := New(opts...)
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(c)
}

// Close releases the HTTP session. It is safe to call more than once; only
// the first call has an effect. Operations on a closed Client return
// ErrClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.http.client.CloseIdleConnections()
	})
	return nil
}

// Search returns sales of item matching opts. A nil opts sends no optional
// parameters.
func (c *Client) Search(
	ctx context.Context,
	item domain.Item,
	opts *SearchOptions,
) (*SearchResponse, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	params, err := opts.Encode(item)
	if err != nil {
		return nil, err
	}

	p, err := c.http.request(ctx, routeSearch, params, nil)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", item, err)
	}

	resp, err := decodeSearch(p)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", item, err)
	}
	return resp, nil
}

// PatternData returns pattern statistics for item. A nil opts sends no
// optional parameters.
func (c *Client) PatternData(
	ctx context.Context,
	item domain.Item,
	opts *PatternDataOptions,
) (*PatternDataResponse, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	params, err := opts.Encode(item)
	if err != nil {
		return nil, err
	}

	p, err := c.http.request(ctx, routePatternData, params, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching pattern data for %s: %w", item, err)
	}

	resp, err := decodePatternData(p)
	if err != nil {
		return nil, fmt.Errorf("fetching pattern data for %s: %w", item, err)
	}
	return resp, nil
}

// PriceCheck returns the estimated USD price of item with the given pattern
// and wear. Pattern and wear are validated before any request is sent.
func (c *Client) PriceCheck(
	ctx context.Context,
	item domain.Item,
	pattern int,
	wear float64,
) (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}

	params, err := priceCheckParams(item, pattern, wear)
	if err != nil {
		return 0, err
	}

	p, err := c.http.request(ctx, routePriceCheck, params, nil)
	if err != nil {
		return 0, fmt.Errorf("price checking %s: %w", item, err)
	}

	price, err := decodePriceCheck(p)
	if err != nil {
		return 0, fmt.Errorf("price checking %s: %w", item, err)
	}
	return price, nil
}
