package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/phishwise/phishwise/internal/config"
	"github.com/phishwise/phishwise/internal/debuglog"
)

// MaxListLimit caps the listing page size before the request leaves the
// client; the server rejects anything larger.
const MaxListLimit = 50

// Client talks to the phishing-news API. It performs one GET per logical
// request and turns the outcome into either a typed value or one of the
// errors in errors.go, never an opaque failure. It keeps no state between
// calls beyond connection reuse; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.API.BaseURL,
		userAgent: cfg.API.UserAgent,
		httpClient: &http.Client{
			// Two distinct ceilings: headers must arrive within the request
			// timeout, the full body within the resource timeout.
			Timeout: cfg.API.ResourceTimeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: cfg.API.RequestTimeout,
			},
		},
	}
}

// FetchToday retrieves the digest for the current UTC day.
func (c *Client) FetchToday(ctx context.Context) (*Digest, error) {
	return c.fetchDigest(ctx, c.baseURL+"/api/phishing-news/today", "today's digest")
}

// FetchLatest retrieves the most recently published digest.
func (c *Client) FetchLatest(ctx context.Context) (*Digest, error) {
	return c.fetchDigest(ctx, c.baseURL+"/api/phishing-news/latest", "latest digest")
}

// FetchDigest retrieves the digest for a specific UTC day.
func (c *Client) FetchDigest(ctx context.Context, date Date) (*Digest, error) {
	return c.fetchDigest(ctx, c.baseURL+"/api/phishing-news/"+date.String(), "digest for "+date.String())
}

// ListDigests retrieves the set of dates for which digests exist. The limit
// is clamped to MaxListLimit before the request is sent.
func (c *Client) ListDigests(ctx context.Context, limit int) (*DigestList, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	body, err := c.get(ctx, c.baseURL+"/api/phishing-news?limit="+strconv.Itoa(limit), "digest list")
	if err != nil {
		return nil, err
	}

	var list DigestList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding digest list: %w", ErrMalformedResponse)
	}
	return &list, nil
}

func (c *Client) fetchDigest(ctx context.Context, url, op string) (*Digest, error) {
	body, err := c.get(ctx, url, op)
	if err != nil {
		return nil, err
	}

	var digest Digest
	if err := json.Unmarshal(body, &digest); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", op, ErrMalformedResponse)
	}
	return &digest, nil
}

// get issues the request and classifies the outcome, returning the raw body
// only on HTTP 200.
func (c *Client) get(ctx context.Context, url, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	debuglog.Debugf("GET %s", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, &ServerError{Status: resp.StatusCode, Detail: envelopeDetail(body)}
	}
}

// envelopeDetail extracts the message from a {error, detail} envelope when
// the server sent one; detail wins over error.
func envelopeDetail(body []byte) string {
	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Detail != "" {
		return envelope.Detail
	}
	return envelope.Error
}
