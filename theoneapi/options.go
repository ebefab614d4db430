package theoneapi

import (
	"net/http"
	"strings"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host. The versioned prefix is appended to it.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
// Any timeout must be configured on it; the client adds none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}
