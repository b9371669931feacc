package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"teamcomp/domain/boss"
	"teamcomp/internal"
	"teamcomp/internal/errors"
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 8 << 20

// Config holds connection settings for the data API
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client reads page payloads and image URLs from the data API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *internal.Logger
}

// NewClient creates a client for the API rooted at cfg.BaseURL
func NewClient(cfg Config, logger *internal.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// BaseURL returns the origin every request targets
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchBoss retrieves the payload served at <base>/<endpoint>
func (c *Client) FetchBoss(ctx context.Context, endpoint string) (*boss.Payload, error) {
	body, err := c.get(ctx, c.baseURL+"/"+strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return nil, err
	}

	payload, err := ParsePayload(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", endpoint)
	}

	c.logger.Debug("[APIClient] %s: %d headers, %d rows", endpoint, len(payload.Headers), len(payload.Rows))
	return payload, nil
}

// LookupImage asks <base>/images/<filename> for the image URL. A null or
// missing image_url gives "" with no error.
func (c *Client) LookupImage(ctx context.Context, filename string) (string, error) {
	body, err := c.get(ctx, c.baseURL+"/images/"+url.PathEscape(filename))
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(body) {
		return "", errors.InvalidPayload(fmt.Errorf("image lookup for %q returned invalid JSON", filename))
	}

	result := gjson.GetBytes(body, "image_url")
	if result.Type != gjson.String {
		return "", nil
	}
	return result.String(), nil
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("data api", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.ExternalServiceError("data api", fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.ExternalServiceError("data api", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	return body, nil
}
