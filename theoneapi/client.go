package theoneapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public host of The One API
	DefaultBaseURL = "https://the-one-api.dev"
	apiPrefix      = "/v2"
)

// Client represents a The One API client. The credential and base URL are
// fixed at construction, so a Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new client. The key is sent verbatim as a bearer
// token; it may be empty for the public routes.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get builds the request URL, sends it and decodes the response into T
func get[T any](ctx context.Context, c *Client, path string, opts *RequestOptions) (*T, error) {
	u, err := url.Parse(c.baseURL + apiPrefix + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	u.RawQuery = opts.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", u.Path).
		Str("query", u.RawQuery).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("The One API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Body: string(body), Err: err}
	}

	return &result, nil
}

// parseErrorResponse turns a non-2xx body into an *Error
func parseErrorResponse(status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &Error{Kind: KindMalformedError, StatusCode: status, Body: string(body), Err: err}
	}
	if errResp.Message == "" {
		return &Error{Kind: KindMalformedError, StatusCode: status, Body: string(body)}
	}
	return &Error{Kind: KindAPI, StatusCode: status, Message: errResp.Message, Body: string(body)}
}

// resourcePath joins a collection, an escaped id and an optional sub-collection
func resourcePath(collection, id, sub string) string {
	p := "/" + collection + "/" + url.PathEscape(id)
	if sub != "" {
		p += "/" + sub
	}
	return p
}

// ListMovies retrieves a page of movies
func (c *Client) ListMovies(ctx context.Context, opts *RequestOptions) (*ListResponse[Movie], error) {
	return get[ListResponse[Movie]](ctx, c, "/movie", opts)
}

// GetMovie retrieves a movie by id
func (c *Client) GetMovie(ctx context.Context, id string) (*ListResponse[Movie], error) {
	return get[ListResponse[Movie]](ctx, c, resourcePath("movie", id, ""), nil)
}

// ListMovieQuotes retrieves a page of quotes from one movie
func (c *Client) ListMovieQuotes(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Quote], error) {
	return get[ListResponse[Quote]](ctx, c, resourcePath("movie", id, "quote"), opts)
}

// ListCharacters retrieves a page of characters
func (c *Client) ListCharacters(ctx context.Context, opts *RequestOptions) (*ListResponse[Character], error) {
	return get[ListResponse[Character]](ctx, c, "/character", opts)
}

// GetCharacter retrieves a character by id
func (c *Client) GetCharacter(ctx context.Context, id string) (*ListResponse[Character], error) {
	return get[ListResponse[Character]](ctx, c, resourcePath("character", id, ""), nil)
}

// ListCharacterQuotes retrieves a page of quotes spoken by one character
func (c *Client) ListCharacterQuotes(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Quote], error) {
	return get[ListResponse[Quote]](ctx, c, resourcePath("character", id, "quote"), opts)
}

// ListBooks retrieves a page of books
func (c *Client) ListBooks(ctx context.Context, opts *RequestOptions) (*ListResponse[Book], error) {
	return get[ListResponse[Book]](ctx, c, "/book", opts)
}

// GetBook retrieves a book by id
func (c *Client) GetBook(ctx context.Context, id string) (*ListResponse[Book], error) {
	return get[ListResponse[Book]](ctx, c, resourcePath("book", id, ""), nil)
}

// ListBookChapters retrieves a page of chapters of one book
func (c *Client) ListBookChapters(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Chapter], error) {
	return get[ListResponse[Chapter]](ctx, c, resourcePath("book", id, "chapter"), opts)
}

// ListQuotes retrieves a page of quotes
func (c *Client) ListQuotes(ctx context.Context, opts *RequestOptions) (*ListResponse[Quote], error) {
	return get[ListResponse[Quote]](ctx, c, "/quote", opts)
}

// GetQuote retrieves a quote by id
func (c *Client) GetQuote(ctx context.Context, id string) (*ListResponse[Quote], error) {
	return get[ListResponse[Quote]](ctx, c, resourcePath("quote", id, ""), nil)
}

// ListChapters retrieves a page of chapters
func (c *Client) ListChapters(ctx context.Context, opts *RequestOptions) (*ListResponse[Chapter], error) {
	return get[ListResponse[Chapter]](ctx, c, "/chapter", opts)
}

// GetChapter retrieves a chapter by id
func (c *Client) GetChapter(ctx context.Context, id string) (*ListResponse[Chapter], error) {
	return get[ListResponse[Chapter]](ctx, c, resourcePath("chapter", id, ""), nil)
}
