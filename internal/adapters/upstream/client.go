// Package upstream fetches JSON documents from the remote form backend.
// One GET per call, bounded by a timeout, never retried
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"datamonitor/internal/core/records"
	perr "datamonitor/internal/platform/errors"
	"datamonitor/internal/platform/logger"
	"datamonitor/internal/platform/metrics"
	pnet "datamonitor/internal/platform/net"
	"datamonitor/internal/platform/net/http/bind"
	pstrings "datamonitor/internal/platform/strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultUA       = "datamonitor-web"
	defaultMaxBytes = 8 << 20
	bodyTailBytes   = 512
)

// Options configures a Client
type Options struct {
	// Name labels logs and metrics, e.g. "records" or "proxy"
	Name      string        `json:"name" validate:"required"`
	URL       string        `json:"url" validate:"required,http_url"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout" validate:"min=0"`
	MaxBytes  int64         `json:"max_bytes" validate:"min=0"`
}

// Observer receives one call per fetch; *metrics.Metrics implements it
type Observer interface {
	ObserveFetch(target, outcome string, d time.Duration)
}

// Client is a single-shot JSON GET client
type Client struct {
	http  *http.Client
	opts  Options
	obs   Observer
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

// Option tweaks a Client
type Option func(*Client)

// WithObserver reports fetch outcomes to o
func WithObserver(o Observer) Option { return func(c *Client) { c.obs = o } }

// WithHTTPClient swaps the transport, the Options timeout is applied to it
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// NewClient validates o, fills defaults and returns a ready Client
func NewClient(o Options, opts ...Option) (*Client, error) {
	if err := bind.Struct(o); err != nil {
		return nil, err
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	c := &Client{
		opts:  o,
		log:   *logger.Named("upstream." + o.Name),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, fn := range opts {
		fn(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	} else {
		cp := *c.http
		c.http = &cp
	}
	c.http.Timeout = o.Timeout
	return c, nil
}

// URL is the fetched endpoint
func (c *Client) URL() string { return c.opts.URL }

// Name is the label used for logs and metrics
func (c *Client) Name() string { return c.opts.Name }

// FetchRaw returns the body verbatim after checking it is one JSON document
func (c *Client) FetchRaw(ctx context.Context) (json.RawMessage, error) {
	start := c.now()
	body, err := c.get(ctx)
	if err != nil {
		c.observe(err, start)
		return nil, err
	}
	if !json.Valid(body) {
		err = perr.Newf(perr.ErrorCodeJSON, "%s returned a non-JSON body %s", c.opts.Name, pstrings.Tail(string(body), bodyTailBytes))
		c.observe(err, start)
		return nil, err
	}
	c.observe(nil, start)
	return json.RawMessage(body), nil
}

// FetchJSON decodes the body keeping object key order, see records.Decode
func (c *Client) FetchJSON(ctx context.Context) (any, error) {
	start := c.now()
	body, err := c.get(ctx)
	if err != nil {
		c.observe(err, start)
		return nil, err
	}
	v, err := records.Decode(bytes.NewReader(body))
	if err != nil {
		err = perr.Wrapf(err, perr.ErrorCodeJSON, "%s returned a non-JSON body %s", c.opts.Name, pstrings.Tail(string(body), bodyTailBytes))
		c.observe(err, start)
		return nil, err
	}
	c.observe(nil, start)
	return v, nil
}

// FetchRecords is the fail-open entry point: any failure is logged and
// yields an empty, non-nil slice with ok false
func (c *Client) FetchRecords(ctx context.Context) (recs []records.Record, ok bool) {
	v, err := c.FetchJSON(ctx)
	if err != nil {
		logger.C(ctx).Warn().
			Err(err).
			Str("component", "upstream."+c.opts.Name).
			Str("url", c.opts.URL).
			Msg("upstream fetch failed, serving empty data")
		return []records.Record{}, false
	}
	recs = records.Normalize(v)
	c.log.Debug().Int("records", len(recs)).Msg("upstream payload normalized")
	return recs, true
}

// get performs the GET and returns the capped body of a 2xx response
func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s new request failed", c.opts.Name)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", c.requestID(ctx))

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s fetch failed", c.opts.Name)
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	c.log.Debug().
		Str("url", c.opts.URL).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Str("content_type", resp.Header.Get("Content-Type")).
		Int64("content_length", resp.ContentLength).
		Msg("upstream http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small tail for diagnostics
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, bodyTailBytes))
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   string(tail),
			Err: perr.Newf(perr.ErrorCodeUpstream, "%s unexpected status %d body %s",
				c.opts.Name, resp.StatusCode, pstrings.Tail(string(tail), bodyTailBytes)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBytes+1))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s read body failed", c.opts.Name)
	}
	if int64(len(body)) > c.opts.MaxBytes {
		return nil, perr.Wrapf(ErrBodyTooLarge, perr.ErrorCodeUpstream, "%s body exceeds %s",
			c.opts.Name, humanize.IBytes(uint64(c.opts.MaxBytes)))
	}
	return body, nil
}

// requestID propagates the inbound request id, or mints one
func (c *Client) requestID(ctx context.Context) string {
	if id := pstrings.FirstNonEmpty(pnet.RequestID(ctx), logger.RequestID(ctx)); id != "" {
		return id
	}
	return c.newID()
}

func (c *Client) observe(err error, start time.Time) {
	if c.obs == nil {
		return
	}
	c.obs.ObserveFetch(c.opts.Name, Outcome(err), c.now().Sub(start))
}

// ErrBodyTooLarge is the cause of an upstream error for a body over MaxBytes
var ErrBodyTooLarge = errors.New("body too large")

// Outcome maps a fetch error to its metrics label
func Outcome(err error) string {
	if errors.Is(err, ErrBodyTooLarge) {
		return metrics.OutcomeTooLarge
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUnknown:
		if err == nil {
			return metrics.OutcomeOK
		}
		return metrics.OutcomeTransport
	case perr.ErrorCodeUpstream:
		return metrics.OutcomeStatus
	case perr.ErrorCodeJSON:
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeTransport
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}
