// Package apiclient sends requests to the course platform REST API. Every
// request carries the resolved identity header; failures come back as
// *errors.AppError and successful bodies as decoded JSON.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	apperrors "course-miniapp/internal/common/errors"
	"course-miniapp/internal/identity"
)

const (
	// maxErrorBody caps the raw body kept on an AppError.
	maxErrorBody = 64 << 10
	// defaultMaxBody caps successful bodies, downloads included.
	defaultMaxBody = 32 << 20

	defaultTimeout = 15 * time.Second
)

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// RawResponse is a non-JSON body, e.g. a certificate file.
type RawResponse struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Doer is what the facades depend on.
type Doer interface {
	Do(ctx context.Context, req Request) (any, error)
	GetRaw(ctx context.Context, path string) (*RawResponse, error)
}

// Client is stateless apart from its configuration and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxBody    int64
	log        zerolog.Logger
}

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	launch     identity.LaunchContext
	host       identity.HostContext
	limiter    *rate.Limiter
	maxBody    int64
	log        zerolog.Logger
}

type Option func(*options)

// WithHTTPClient uses hc as the base; its transport is wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLaunch sets the default launch context; identity.WithLaunch overrides it per call.
func WithLaunch(launch identity.LaunchContext) Option {
	return func(o *options) { o.launch = launch }
}

func WithHost(host identity.HostContext) Option {
	return func(o *options) { o.host = host }
}

// WithRateLimit delays sends above rps requests per second. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMaxBody caps successful bodies at n bytes; a larger body is an error.
func WithMaxBody(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBody = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates a client for baseURL (absolute, e.g. http://localhost:5173/api).
func New(baseURL string, resolver CredentialResolver, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	o := options{timeout: defaultTimeout, maxBody: defaultMaxBody, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log

	hc := &http.Client{Timeout: o.timeout}
	if o.httpClient != nil {
		copied := *o.httpClient
		hc = &copied
		if hc.Timeout == 0 {
			hc.Timeout = o.timeout
		}
	}
	hc.Transport = &identityTransport{
		base:     hc.Transport,
		resolver: resolver,
		launch:   o.launch,
		host:     o.host,
		log:      log,
	}

	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: hc,
		limiter:    o.limiter,
		maxBody:    o.maxBody,
		log:        log,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the decoded JSON body. Empty and undecodable
// 2xx bodies yield nil; the normalizer turns them into defaults.
func (c *Client) Do(ctx context.Context, req Request) (any, error) {
	data, _, err := c.send(ctx, req, "application/json")
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	v, err := decode(data)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("Response body is not JSON, passing nil on")
		return nil, nil
	}
	return v, nil
}

// GetRaw downloads a binary body with the same identity and error handling.
func (c *Client) GetRaw(ctx context.Context, path string) (*RawResponse, error) {
	data, header, err := c.send(ctx, Request{Method: http.MethodGet, Path: path}, "*/*")
	if err != nil {
		return nil, err
	}
	return &RawResponse{
		Body:        data,
		ContentType: header.Get("Content-Type"),
		Filename:    filenameFrom(header.Get("Content-Disposition")),
	}, nil
}

func (c *Client) send(ctx context.Context, req Request, accept string) ([]byte, http.Header, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to encode request body").
				WithRequest(method, req.Path)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint(req.Path, req.Query), body)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to build request").
			WithRequest(method, req.Path)
	}
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, apperrors.NewTransportError(err).
				WithRequest(method, req.Path).
				WithRequestID(requestID)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", req.Path).Msg("Request failed")
		return nil, nil, apperrors.NewTransportError(err).
			WithRequest(method, req.Path).
			WithRequestID(requestID)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, nil, apperrors.NewTransportError(err).
			WithRequest(method, req.Path).
			WithRequestID(requestID)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload any
		if len(bytes.TrimSpace(data)) > 0 {
			payload, _ = decode(data)
		}
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		appErr := apperrors.NewHTTPError(resp.StatusCode, serverMessage(payload), payload, data).
			WithRequest(method, req.Path).
			WithRequestID(requestID)
		c.log.Warn().
			Str("method", method).
			Str("path", req.Path).
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg(appErr.Message)
		return nil, nil, appErr
	}

	if int64(len(data)) > c.maxBody {
		return nil, nil, apperrors.New(apperrors.ErrCodeInternal, fmt.Sprintf("Response body exceeds %d bytes", c.maxBody)).
			WithRequest(method, req.Path).
			WithRequestID(requestID).
			WithDetail("status", resp.StatusCode)
	}

	return data, resp.Header, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// serverMessage extracts the human readable error from the usual backend
// shapes: {"detail": "..."}, {"detail": [{"msg": "..."}]}, {"message": "..."}.
func serverMessage(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	switch d := obj["detail"].(type) {
	case string:
		return d
	case []any:
		if len(d) > 0 {
			if first, ok := d[0].(map[string]any); ok {
				if msg, ok := first["msg"].(string); ok {
					return msg
				}
			}
		}
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// filenameFrom reads the filename parameter of a Content-Disposition header;
// an RFC 2231 filename* value is decoded into the same key.
func filenameFrom(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
