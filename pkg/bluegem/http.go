package bluegem

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the API origin all routes are resolved against.
	DefaultBaseURL = "https://api.csbluegem.com/v2"

	maxMessageLen = 200
)

// Route is an immutable (method, path) pair identifying one API endpoint.
type Route struct {
	method string
	path   string
}

// NewRoute returns a Route for method and path. path must start with "/".
func NewRoute(method, path string) Route {
	return Route{method: method, path: path}
}

// Method returns the HTTP method of the route.
func (r Route) Method() string { return r.method }

// Path returns the path of the route relative to the base URL.
func (r Route) Path() string { return r.path }

func (r Route) String() string { return r.method + " " + r.path }

var (
	routeSearch      = NewRoute(http.MethodGet, "/search")
	routePatternData = NewRoute(http.MethodGet, "/patterndata")
	routePriceCheck  = NewRoute(http.MethodGet, "/pricecheck")
)

// Observer is notified once per completed request. Outcome is one of "ok",
// "invalid_request", "not_found", "server_error", "http_error",
// "decode_error" or "transport_error". Status is 0 when no response was
// received.
type Observer interface {
	ObserveRequest(route Route, status int, outcome string, elapsed time.Duration)
}

type payloadKind int

const (
	payloadText payloadKind = iota
	payloadJSON
	payloadBytes
)

// payload is a response body decoded according to its declared media type.
type payload struct {
	status int
	kind   payloadKind
	raw    []byte
	text   string
	json   any
}

// transport performs exactly one HTTP request per call and maps the
// response to a payload or a typed error. It never retries and has no
// timeout of its own.
type transport struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
	observer  Observer
	tracer    trace.Tracer
}

func (t *transport) request(
	ctx context.Context,
	route Route,
	params url.Values,
	body any,
) (*payload, error) {
	u := t.baseURL + route.Path()
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	ctx, span := t.tracer.Start(ctx, "bluegem "+route.String(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", route.Method()),
			attribute.String("url.path", route.Path()),
		),
	)
	defer span.End()

	requestID := uuid.NewString()
	start := time.Now()

	p, err := t.do(ctx, route, u, body)
	elapsed := time.Since(start)

	status := 0
	if p != nil {
		status = p.status
	}
	outcome := outcomeOf(err)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}

	t.logger.DebugContext(ctx, "bluegem request",
		"request_id", requestID,
		"method", route.Method(),
		"path", route.Path(),
		"status", status,
		"outcome", outcome,
		"duration", elapsed,
	)

	if t.observer != nil {
		t.observer.ObserveRequest(route, status, outcome, elapsed)
	}

	return p, err
}

// do sends the request and classifies the response. The returned payload is
// non-nil whenever a response was received, even if err is set.
func (t *transport) do(ctx context.Context, route Route, u string, body any) (*payload, error) {
	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: "marshaling request body", Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method(), u, bodyReader)
	if err != nil {
		return nil, &TransportError{Op: "creating request", Err: err}
	}

	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "sending request", Err: err}
	}
	defer resp.Body.Close()

	p, err := readPayload(resp)
	if err != nil {
		return nil, err
	}

	return p, classify(p)
}

func readPayload(resp *http.Response) (*payload, error) {
	reader, err := decompress(resp)
	if err != nil {
		return nil, &TransportError{Op: "decompressing response body", Err: err}
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, &TransportError{Op: "reading response body", Err: err}
	}

	p := &payload{status: resp.StatusCode, raw: raw}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/octet-stream":
		p.kind = payloadBytes
	case "application/json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&p.json); err != nil {
			if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
				// Error pages mislabelled as JSON are still classified by status.
				p.kind = payloadText
				p.text = string(raw)
				return p, nil
			}
			return nil, &DecodeError{Err: fmt.Errorf("parsing JSON body: %w", err)}
		}
		p.kind = payloadJSON
	default:
		p.kind = payloadText
		p.text = string(raw)
	}

	return p, nil
}

func decompress(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		return brotli.NewReader(resp.Body), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	default:
		return resp.Body, nil
	}
}

// classify maps a payload to the error taxonomy. An embedded message wins
// over the status code because the API reports semantic errors with 2xx
// statuses too.
func classify(p *payload) error {
	message := ""
	switch p.kind {
	case payloadJSON:
		if obj, ok := p.json.(map[string]any); ok {
			if m, ok := obj["message"]; ok && m != nil {
				return &APIError{Kind: ErrInvalidRequest, StatusCode: p.status, Message: fmt.Sprint(m)}
			}
		}
	case payloadText:
		message = truncate(strings.TrimSpace(p.text), maxMessageLen)
	}

	switch {
	case p.status >= http.StatusInternalServerError:
		return &APIError{Kind: ErrServerError, StatusCode: p.status, Message: message}
	case p.status == http.StatusNotFound:
		return &APIError{Kind: ErrNotFound, StatusCode: p.status, Message: message}
	case p.status >= http.StatusOK && p.status < http.StatusMultipleChoices:
		return nil
	}

	msg := "an unexpected error occurred"
	if message != "" {
		msg += ": " + message
	}
	return &APIError{Kind: ErrHTTP, StatusCode: p.status, Message: msg}
}

func outcomeOf(err error) string {
	var (
		apiErr    *APIError
		decodeErr *DecodeError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.Is(err, ErrTransport), !errors.As(err, &apiErr):
		return "transport_error"
	}
	switch apiErr.Kind {
	case ErrInvalidRequest:
		return "invalid_request"
	case ErrNotFound:
		return "not_found"
	case ErrServerError:
		return "server_error"
	default:
		return "http_error"
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
