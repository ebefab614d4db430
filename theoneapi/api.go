package theoneapi

import (
	"context"
)

// API defines the interface for The One API operations
type API interface {
	// ListMovies retrieves a page of movies
	ListMovies(ctx context.Context, opts *RequestOptions) (*ListResponse[Movie], error)
	// GetMovie retrieves a movie by id
	GetMovie(ctx context.Context, id string) (*ListResponse[Movie], error)
	// ListMovieQuotes retrieves a page of quotes from one movie
	ListMovieQuotes(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Quote], error)

	// ListCharacters retrieves a page of characters
	ListCharacters(ctx context.Context, opts *RequestOptions) (*ListResponse[Character], error)
	// GetCharacter retrieves a character by id
	GetCharacter(ctx context.Context, id string) (*ListResponse[Character], error)
	// ListCharacterQuotes retrieves a page of quotes spoken by one character
	ListCharacterQuotes(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Quote], error)

	// ListBooks retrieves a page of books
	ListBooks(ctx context.Context, opts *RequestOptions) (*ListResponse[Book], error)
	// GetBook retrieves a book by id
	GetBook(ctx context.Context, id string) (*ListResponse[Book], error)
	// ListBookChapters retrieves a page of chapters of one book
	ListBookChapters(ctx context.Context, id string, opts *RequestOptions) (*ListResponse[Chapter], error)

	// ListQuotes retrieves a page of quotes
	ListQuotes(ctx context.Context, opts *RequestOptions) (*ListResponse[Quote], error)
	// GetQuote retrieves a quote by id
	GetQuote(ctx context.Context, id string) (*ListResponse[Quote], error)

	// ListChapters retrieves a page of chapters
	ListChapters(ctx context.Context, opts *RequestOptions) (*ListResponse[Chapter], error)
	// GetChapter retrieves a chapter by id
	GetChapter(ctx context.Context, id string) (*ListResponse[Chapter], error)
}

var _ API = (*Client)(nil)
