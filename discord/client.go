// Package discord implements newswatch.Notifier over Discord-style webhook
// endpoints. Primary segments are delivered as rich embeds, overflow
// segments as plain content messages, and image batches as multipart
// uploads.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mkowalik/newswatch"
	"golang.org/x/time/rate"
)

const (
	// DefaultJSONTimeout bounds plain JSON deliveries.
	DefaultJSONTimeout = 30 * time.Second

	// DefaultMultipartTimeout bounds attachment deliveries, which carry
	// larger payloads.
	DefaultMultipartTimeout = 60 * time.Second

	// DefaultAttempts is the delivery attempt budget per message.
	DefaultAttempts = 5

	// DefaultMessageInterval paces successive messages to one endpoint.
	// Not a correctness requirement, but the transport rate-limits
	// bursts.
	DefaultMessageInterval = time.Second

	// errorBodyLimit truncates response bodies carried in terminal errors.
	errorBodyLimit = 200
)

// SleepFunc waits for the given duration or until the context is done.
// Injectable for tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Ensure Client implements newswatch.Notifier at compile time.
var _ newswatch.Notifier = (*Client)(nil)

// Client delivers messages to one webhook endpoint with bounded retry.
type Client struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	sleep    SleepFunc
	logger   *slog.Logger
	attempts int

	jsonTimeout      time.Duration
	multipartTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithLogger sets the logger for retry diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// WithSleep replaces the backoff sleep function. Useful for testing
// without waiting for real delays.
func WithSleep(sleep SleepFunc) ClientOption {
	return func(cl *Client) {
		cl.sleep = sleep
	}
}

// WithAttempts overrides the delivery attempt budget.
func WithAttempts(n int) ClientOption {
	return func(cl *Client) {
		cl.attempts = n
	}
}

// WithMessageInterval overrides the pacing between successive messages.
func WithMessageInterval(d time.Duration) ClientOption {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a Client for one recipient endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:         endpoint,
		client:           &http.Client{},
		limiter:          rate.NewLimiter(rate.Every(DefaultMessageInterval), 1),
		sleep:            defaultSleep,
		logger:           slog.Default(),
		attempts:         DefaultAttempts,
		jsonTimeout:      DefaultJSONTimeout,
		multipartTimeout: DefaultMultipartTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire format. allowed_mentions is always suppressed; scraped content must
// never ping anyone.
type payload struct {
	Content         string          `json:"content"`
	Embeds          []embed         `json:"embeds,omitempty"`
	AllowedMentions allowedMentions `json:"allowed_mentions"`
}

type embed struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type allowedMentions struct {
	Parse []string `json:"parse"`
}

func newPayload() payload {
	return payload{AllowedMentions: allowedMentions{Parse: []string{}}}
}

// Send delivers one segment. Primary segments become rich embeds carrying
// the title and link; overflow segments are plain content messages.
func (c *Client) Send(ctx context.Context, segment newswatch.Segment) error {
	p := newPayload()
	switch segment.Kind {
	case newswatch.SegmentPrimary:
		p.Embeds = []embed{{
			Title:       segment.Title,
			URL:         segment.URL,
			Description: segment.Text,
		}}
	case newswatch.SegmentOverflow:
		p.Content = segment.Text
	default:
		return newswatch.Errorf(newswatch.EINVALID, "unknown segment kind %d", segment.Kind)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return c.post(ctx, body, "application/json", c.jsonTimeout)
}

// SendImages delivers an attachment batch as one multipart message with an
// empty content payload.
func (c *Client) SendImages(ctx context.Context, images []newswatch.Image) error {
	if len(images) == 0 {
		return newswatch.Errorf(newswatch.EINVALID, "empty image batch")
	}

	payloadJSON, err := json.Marshal(newPayload())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("payload_json", string(payloadJSON)); err != nil {
		return err
	}
	for i, img := range images {
		part, err := w.CreateFormFile(fmt.Sprintf("files[%d]", i), img.Filename)
		if err != nil {
			return err
		}
		if _, err := part.Write(img.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.post(ctx, buf.Bytes(), w.FormDataContentType(), c.multipartTimeout)
}

// post delivers one request body with bounded retry. The transient boundary
// is explicit: HTTP 429 and 5xx retry, as do transport-level errors; any
// other non-2xx status is a terminal rejection and fails immediately.
func (c *Client) post(ctx context.Context, body []byte, contentType string, timeout time.Duration) error {
	requestID := uuid.NewString()

	var lastStatus int
	var lastBody string
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		status, respBody, err := c.postOnce(ctx, body, contentType, timeout)
		if err == nil && status >= 200 && status < 300 {
			return nil
		}

		if err != nil {
			// Transport-level failure: retryable.
			lastErr = err
			c.logger.Warn("delivery attempt failed",
				"request_id", requestID,
				"attempt", attempt,
				"error", err,
			)
		} else if !retryableStatus(status) {
			return newswatch.Errorf(newswatch.EINVALID,
				"delivery rejected: status=%d body=%q", status, respBody)
		} else {
			lastStatus = status
			lastBody = respBody
			lastErr = nil
			c.logger.Warn("delivery attempt failed",
				"request_id", requestID,
				"attempt", attempt,
				"status", status,
			)
		}

		if attempt == c.attempts {
			break
		}
		if err := c.sleep(ctx, time.Duration(attempt)*2*time.Second); err != nil {
			return err
		}
	}

	if lastErr != nil {
		return newswatch.Errorf(newswatch.EUNAVAILABLE,
			"delivery failed after %d attempts: %v", c.attempts, lastErr)
	}
	return newswatch.Errorf(newswatch.EUNAVAILABLE,
		"delivery failed after %d attempts: status=%d body=%q", c.attempts, lastStatus, lastBody)
}

func (c *Client) postOnce(ctx context.Context, body []byte, contentType string, timeout time.Duration) (int, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return resp.StatusCode, string(respBody), nil
}

// retryableStatus reports whether a delivery failure with this status is
// expected to succeed if retried after a delay.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}
