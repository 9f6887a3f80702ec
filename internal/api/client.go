package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/fragmede/bridgetui/internal/logutil"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "bridgetui/1.0"
)

// Client talks to the Bridge auth API. The session cookie set by sign in
// is kept in a jar and sent with later calls.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the server at baseURL. A timeout of zero
// uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// do sends body as JSON (when non-nil) and decodes a 2xx response into
// dst (when non-nil). Every failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) (int, error) {
	id := RequestID(ctx)
	log := logutil.GetOrDefault(ctx).With().
		Str("method", method).
		Str("path", path).
		Str("request.id", id).
		Logger()

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &Error{Err: fmt.Errorf("encoding request: %w", err)}
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, &Error{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Request failed")
		return 0, &Error{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("Reading response failed")
		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}
	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, e); err != nil {
			e.Err = fmt.Errorf("decoding error body: %w", err)
		}
		log.Warn().Int("status", resp.StatusCode).Str("error.type", e.Type).Msg("Server returned an error")
		return resp.StatusCode, e
	}

	if dst == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response from %s: %w", path, err)}
	}
	return resp.StatusCode, nil
}
