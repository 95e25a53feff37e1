// Package restapi is the HTTP client for the complaints backend. It speaks
// the {data: ...} envelope of the /complaints resource and turns every
// failure into one of the domain error kinds.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBody    = 4 << 10
	complaintsPath  = "/complaints"
	contentTypeJSON = "application/json"
)

// Config captures the settings needed to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// CallRecorder observes every backend call (metrics).
type CallRecorder interface {
	ObserveCall(operation string, kind domain.ErrorKind, elapsed time.Duration)
}

// Client implements ports.ComplaintAPI over HTTP.
type Client struct {
	base string
	http *http.Client
	rec  CallRecorder
	log  zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. The configured
// timeout is not applied to a client passed this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithCallRecorder(rec CallRecorder) Option {
	return func(c *Client) { c.rec = rec }
}

// New validates cfg and returns a Client.
func New(cfg Config, log zerolog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("restapi: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("restapi: base url %q must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.With().Str("component", "restapi").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type bearerKey struct{}

// WithBearer attaches the caller's token to ctx; it is forwarded as an
// Authorization header on every backend call made with that context.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey{}, token)
}

func bearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

type listEnvelope struct {
	Data []domain.Complaint `json:"data"`
}

type itemEnvelope struct {
	Data *domain.Complaint `json:"data"`
}

type createRequest struct {
	Title       string          `json:"title"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
}

type updateStatusRequest struct {
	Status domain.ComplaintStatus `json:"status"`
	Note   string                 `json:"note,omitempty"`
}

// List handles GET /complaints.
func (c *Client) List(ctx context.Context) ([]domain.Complaint, error) {
	var env listEnvelope
	if err := c.do(ctx, "list", http.MethodGet, complaintsPath, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get handles GET /complaints/{id}. An empty data field counts as not found.
func (c *Client) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	var env itemEnvelope
	if err := c.do(ctx, "get", http.MethodGet, itemPath(id), nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, domain.NewAPIError(http.StatusOK, "empty data", domain.ErrComplaintNotFound)
	}
	return env.Data, nil
}

// Create handles POST /complaints. The response body is not interpreted.
func (c *Client) Create(ctx context.Context, in domain.NewComplaint) error {
	body := createRequest{
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Priority:    in.Priority,
	}
	return c.do(ctx, "create", http.MethodPost, complaintsPath, body, nil)
}

// UpdateStatus handles PATCH /complaints/{id}.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, note string) error {
	body := updateStatusRequest{Status: status, Note: note}
	return c.do(ctx, "update_status", http.MethodPatch, itemPath(id), body, nil)
}

// Ping reports whether the backend answers the list endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, complaintsPath, nil, nil)
}

func itemPath(id string) string {
	return complaintsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.rec != nil {
			c.rec.ObserveCall(op, domain.KindOf(err), time.Since(start))
		}
	}()

	var body io.Reader
	if in != nil {
		buf, mErr := json.Marshal(in)
		if mErr != nil {
			return fmt.Errorf("restapi: encode %s body: %w", op, mErr)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("restapi: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if token := bearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Str("path", path).Msg("backend unreachable")
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrBackendUnavailable, op, err)
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(raw))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		switch {
		case eb.Error != "":
			msg = eb.Error
		case eb.Message != "":
			msg = eb.Message
		}
	}

	var kind error
	switch code := resp.StatusCode; {
	case code == http.StatusNotFound:
		kind = domain.ErrComplaintNotFound
	case code >= 500:
		kind = domain.ErrBackendUnavailable
	case code >= 400:
		kind = domain.ErrRejected
	default:
		kind = domain.ErrBackendUnavailable
	}
	return domain.NewAPIError(resp.StatusCode, msg, kind)
}
