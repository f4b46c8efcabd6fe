// Package valapi talks to the Valorant game-data API: it fetches the agent
// list as JSON and downloads portrait and ability images.
//
// Requests go through a retryablehttp client. Retries default to zero, so a
// failure surfaces on the first attempt unless the config asks otherwise.
// Non-2xx responses are handed back to the caller rather than turned into
// errors: [Client.FetchImage] maps them to "no image".
package valapi

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	// Decoders for the formats the media CDN serves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultEndpoint is the public agent list.
const DefaultEndpoint = "https://valorant-api.com/v1/agents"

const (
	maxJSONBytes  = 32 << 20 // 32 MiB
	maxImageBytes = 16 << 20 // 16 MiB
)

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("GET %s: %v", e.URL, e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("decode %s: %v", e.URL, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ///////////////////////////////////////////////
// Client
// ///////////////////////////////////////////////

// Options configures a [Client].
type Options struct {
	// Timeout bounds each attempt. Zero means no timeout.
	Timeout time.Duration
	// RetryMax is the number of retries after the first attempt.
	RetryMax int
	// UserAgent is sent on every request when non-empty.
	UserAgent string
	// Logger receives request and image diagnostics. Nil silences retryablehttp
	// and sends the rest to slog.Default().
	Logger *slog.Logger
}

// Client fetches JSON and images over HTTP. It holds no per-request state.
type Client struct {
	http      *retryablehttp.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = max(opts.RetryMax, 0)
	rc.HTTPClient.Timeout = opts.Timeout
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	lg := opts.Logger
	if lg != nil {
		rc.Logger = lg
	} else {
		rc.Logger = nil // suppress retryablehttp's default logging
		lg = slog.Default()
	}
	return &Client{http: rc, userAgent: opts.UserAgent, logger: lg}
}

// checkRetry keeps retryablehttp's retry decisions but only reports an error
// when no response arrived. Once retries run out, a 5xx response is passed
// through to the caller like any other status.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	if err == nil && ctx.Err() == nil {
		checkErr = nil
	}
	return retry, checkErr
}

// get issues a GET and returns the raw response. The caller closes the body.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	return resp, nil
}

// FetchJSON GETs rawURL and decodes the body into v. The status code is not
// checked: an error page that is not valid JSON fails as a *ParseError.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, v any) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBytes+1))
	if err != nil {
		return &NetworkError{URL: rawURL, Err: fmt.Errorf("reading response: %w", err)}
	}
	if int64(len(body)) > maxJSONBytes {
		return &ParseError{URL: rawURL, Err: fmt.Errorf("response exceeds %d bytes", maxJSONBytes)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{URL: rawURL, Err: err}
	}
	return nil
}

// FetchImage GETs rawURL and decodes the body as an image. A non-2xx status
// returns (nil, nil): there is no image, and that is not an error.
func (c *Client) FetchImage(ctx context.Context, rawURL string) (image.Image, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("image unavailable", "url", rawURL, "status", resp.StatusCode)
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, nil
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &ParseError{URL: rawURL, Err: err}
	}
	return img, nil
}

// ///////////////////////////////////////////////
// Agents
// ///////////////////////////////////////////////

// Query narrows the agent list.
type Query struct {
	// Language is an API locale such as "en-US" or "ja-JP"; empty uses the
	// API default.
	Language string
	// PlayableOnly drops non-playable duplicates from the list.
	PlayableOnly bool
}

// agentsResponse is the envelope returned by the agents endpoint.
type agentsResponse struct {
	Status int               `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// AgentsURL returns endpoint with the query parameters applied.
func AgentsURL(endpoint string, q Query) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	values := u.Query()
	if q.Language != "" {
		values.Set("language", q.Language)
	}
	if q.PlayableOnly {
		values.Set("isPlayableCharacter", "true")
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// FetchAgents fetches the agent list and returns the raw records in the
// order received. A body without a "data" array is a *ParseError.
func (c *Client) FetchAgents(ctx context.Context, endpoint string, q Query) ([]json.RawMessage, error) {
	u, err := AgentsURL(endpoint, q)
	if err != nil {
		return nil, err
	}
	var resp agentsResponse
	if err := c.FetchJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &ParseError{URL: u, Err: fmt.Errorf("response has no data array (status %d)", resp.Status)}
	}
	return resp.Data, nil
}
