// Package spotify is a small client for the Spotify Web API catalog: track and
// album search and lookup under the client-credentials flow.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/keshon/abyss/pkg/retrylimit"
)

const (
	DefaultAPIURL   = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

// ErrNotFound is returned when a search has no results or a looked up ID does
// not exist.
var ErrNotFound = errors.New("spotify: no results")

// StatusError is a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify: %d %s", e.Code, e.Message)
}

func (e *StatusError) StatusCode() int { return e.Code }

type Client struct {
	id, secret string
	apiURL     string
	tokenURL   string
	http       *http.Client
	limiter    *retrylimit.AdaptiveLimiter
	retry      retrylimit.Config

	mu      sync.Mutex
	token   string
	expires time.Time
}

type Option func(*Client)

// WithBaseURLs points the client at other endpoints, e.g. a test server.
func WithBaseURLs(apiURL, tokenURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimRight(apiURL, "/")
		c.tokenURL = tokenURL
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithRetry(cfg retrylimit.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		id:       clientID,
		secret:   clientSecret,
		apiURL:   DefaultAPIURL,
		tokenURL: DefaultTokenURL,
		http:     &http.Client{Timeout: 10 * time.Second},
		limiter:  retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		retry:    retrylimit.DefaultConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchTrack returns the best match for query.
func (c *Client) SearchTrack(ctx context.Context, query string) (*Track, error) {
	var res struct {
		Tracks struct {
			Items []Track `json:"items"`
		} `json:"tracks"`
	}
	if err := c.search(ctx, query, "track", &res); err != nil {
		return nil, err
	}
	if len(res.Tracks.Items) == 0 {
		return nil, ErrNotFound
	}
	return &res.Tracks.Items[0], nil
}

// SearchAlbum returns the full album best matching query.
func (c *Client) SearchAlbum(ctx context.Context, query string) (*Album, error) {
	var res struct {
		Albums struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"albums"`
	}
	if err := c.search(ctx, query, "album", &res); err != nil {
		return nil, err
	}
	if len(res.Albums.Items) == 0 {
		return nil, ErrNotFound
	}
	return c.Album(ctx, res.Albums.Items[0].ID)
}

func (c *Client) Track(ctx context.Context, id string) (*Track, error) {
	var t Track
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, missing(err)
	}
	return &t, nil
}

func (c *Client) Album(ctx context.Context, id string) (*Album, error) {
	var a Album
	if err := c.get(ctx, "/albums/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, missing(err)
	}
	return &a, nil
}

// missing marks unknown or malformed IDs as ErrNotFound, keeping the
// StatusError in the chain.
func missing(err error) error {
	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusNotFound || se.Code == http.StatusBadRequest) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func (c *Client) search(ctx context.Context, query, kind string, out any) error {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", kind)
	q.Set("limit", "1")
	return c.get(ctx, "/search", q, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return retrylimit.Do(ctx, c.limiter, c.retry, func(ctx context.Context) error {
		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return retrylimit.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			// no status attached so the call is retried with a fresh token
			c.resetToken()
			return errors.New("spotify: access token rejected")
		}
		if err := checkStatus(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return retrylimit.Permanent(fmt.Errorf("decode %s: %w", path, err))
		}
		return nil
	})
}

// accessToken returns a cached token, fetching a new one shortly before expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expires) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", retrylimit.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.id, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return "", retrylimit.Permanent(fmt.Errorf("token: %w", err))
		}
		return "", err
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", retrylimit.Permanent(fmt.Errorf("decode token: %w", err))
	}

	c.token = tok.AccessToken
	c.expires = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - 30*time.Second)
	return c.token, nil
}

func (c *Client) resetToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	var apiErr struct {
		Error       json.RawMessage `json:"error"`
		Description string          `json:"error_description"`
	}
	msg := http.StatusText(resp.StatusCode)
	if json.Unmarshal(body, &apiErr) == nil {
		var nested struct {
			Message string `json:"message"`
		}
		switch {
		case apiErr.Description != "":
			msg = apiErr.Description
		case json.Unmarshal(apiErr.Error, &nested) == nil && nested.Message != "":
			msg = nested.Message
		}
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
