package wikipedia

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/cityguide/internal/errors"
)

var (
	// ErrEmptySubject is returned by Fetch when the subject name is blank.
	ErrEmptySubject = stdErrors.New("empty subject")
	// ErrResponseTooLarge is wrapped when the API response exceeds the body limit.
	ErrResponseTooLarge = stdErrors.New("response too large")
)

// Enrich fetches and extracts the page for subject. Any failure is logged
// and reported as nil so callers can fall back to their own data.
func (c *Client) Enrich(ctx context.Context, subject string) *Enrichment {
	enrichment, err := c.Fetch(ctx, subject)
	if err != nil {
		slog.Warn("Wikipedia enrichment failed", "subject", subject, "error", err)
		return nil
	}
	return enrichment
}

// Fetch retrieves the page for subject and extracts an Enrichment from it.
// Failures are returned as *errors.FetchError so callers can tell a timeout
// from a missing page or a malformed response. No partial result is ever
// returned alongside an error.
func (c *Client) Fetch(ctx context.Context, subject string) (*Enrichment, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, errors.NewFetchError(errors.KindNotFound, subject, 0, ErrEmptySubject)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.parseURL(subject), nil)
	if err != nil {
		return nil, errors.NewFetchError(errors.KindTransport, subject, 0, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("Fetching Wikipedia page", "subject", subject)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(transportKind(ctx, err), subject, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(subject, resp)
	}

	// One byte past the limit tells a full body from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errors.NewFetchError(transportKind(ctx, err), subject, resp.StatusCode, fmt.Errorf("read response: %w", err))
	}
	if int64(len(body)) > c.maxBody {
		return nil, errors.NewFetchError(errors.KindMalformed, subject, resp.StatusCode,
			fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody))
	}

	var payload parseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.NewFetchError(errors.KindMalformed, subject, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	if payload.Error != nil {
		kind := errors.KindMalformed
		if payload.Error.Code == "missingtitle" || payload.Error.Code == "invalidtitle" {
			kind = errors.KindNotFound
		}
		return nil, errors.NewFetchError(kind, subject, resp.StatusCode,
			fmt.Errorf("api error %s: %s", payload.Error.Code, payload.Error.Info))
	}

	if payload.Parse == nil || payload.Parse.Title == "" || payload.Parse.Text.HTML == "" {
		return nil, errors.NewFetchError(errors.KindMalformed, subject, resp.StatusCode,
			stdErrors.New("response lacks parse.title or parse.text"))
	}

	for _, r := range payload.Parse.Redirects {
		slog.Debug("Wikipedia redirect", "from", r.From, "to", r.To)
	}

	return extract(payload.Parse.Title, payload.Parse.Text.HTML, c.wikiURL), nil
}

func (c *Client) parseURL(subject string) string {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("format", "json")
	params.Set("prop", "text")
	params.Set("redirects", "1")
	params.Set("page", subject)
	return c.apiURL + "?" + params.Encode()
}

func statusError(subject string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.NewFetchError(errors.KindNotFound, subject, resp.StatusCode, nil)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		return errors.NewFetchError(errors.KindRateLimited, subject, resp.StatusCode,
			errors.NewRateLimitErrorWithRetry("Wikipedia API rate limit reached", retryAfter))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewFetchError(errors.KindStatus, subject, resp.StatusCode,
			fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}
}

// parseRetryAfter understands both forms of the header: delay seconds and an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func transportKind(ctx context.Context, err error) errors.FetchErrorKind {
	if stdErrors.Is(err, context.DeadlineExceeded) || stdErrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.KindTimeout
	}
	var netErr net.Error
	if stdErrors.As(err, &netErr) && netErr.Timeout() {
		return errors.KindTimeout
	}
	return errors.KindTransport
}
