package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

const (
	// DefaultPageSize is the page size used when fetching every page
	DefaultPageSize = 100
	// DefaultConcurrency bounds the number of pages fetched at once
	DefaultConcurrency = 4
)

// Page is a resource-agnostic ListResponse
type Page struct {
	Resource Resource             `json:"resource"`
	Docs     []theoneapi.Document `json:"docs"`
	Total    int                  `json:"total"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
	Page     int                  `json:"page"`
	Pages    int                  `json:"pages"`
}

type listFunc func(ctx context.Context, opts *theoneapi.RequestOptions) (*Page, error)

// Operations dispatches catalog requests by resource name
type Operations struct {
	api         theoneapi.API
	logger      zerolog.Logger
	pageSize    int
	concurrency int
}

// NewOperations creates a new Operations instance
func NewOperations(api theoneapi.API, logger zerolog.Logger) *Operations {
	return &Operations{
		api:         api,
		logger:      logger,
		pageSize:    DefaultPageSize,
		concurrency: DefaultConcurrency,
	}
}

// SetPageSize sets the page size used by All when the caller gives no limit
func (o *Operations) SetPageSize(size int) {
	if size > 0 {
		o.pageSize = size
	}
}

// SetConcurrency sets how many pages All fetches at once
func (o *Operations) SetConcurrency(n int) {
	if n > 0 {
		o.concurrency = n
	}
}

// List fetches one page of a collection
func (o *Operations) List(ctx context.Context, resource Resource, opts *theoneapi.RequestOptions) (*Page, error) {
	list, err := o.lister(resource)
	if err != nil {
		return nil, err
	}
	return list(ctx, opts)
}

// Get fetches a single document by id
func (o *Operations) Get(ctx context.Context, resource Resource, id string) (theoneapi.Document, error) {
	var (
		page *Page
		err  error
	)

	switch resource {
	case ResourceMovie:
		page, err = toPage(resource, o.api.GetMovie)(ctx, id)
	case ResourceCharacter:
		page, err = toPage(resource, o.api.GetCharacter)(ctx, id)
	case ResourceBook:
		page, err = toPage(resource, o.api.GetBook)(ctx, id)
	case ResourceChapter:
		page, err = toPage(resource, o.api.GetChapter)(ctx, id)
	case ResourceQuote:
		page, err = toPage(resource, o.api.GetQuote)(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", resource, id, err)
	}

	if len(page.Docs) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
	}
	return page.Docs[0], nil
}

// Related fetches one page of the collection nested under a document:
// quotes of a movie or character, chapters of a book.
func (o *Operations) Related(ctx context.Context, resource Resource, id string, opts *theoneapi.RequestOptions) (*Page, error) {
	list, err := o.relatedLister(resource, id)
	if err != nil {
		return nil, err
	}
	return list(ctx, opts)
}

// All fetches every page of a collection
func (o *Operations) All(ctx context.Context, resource Resource, opts theoneapi.RequestOptions) ([]theoneapi.Document, error) {
	list, err := o.lister(resource)
	if err != nil {
		return nil, err
	}
	return o.collect(ctx, list, opts)
}

// AllRelated fetches every page of the collection nested under a document
func (o *Operations) AllRelated(ctx context.Context, resource Resource, id string, opts theoneapi.RequestOptions) ([]theoneapi.Document, error) {
	list, err := o.relatedLister(resource, id)
	if err != nil {
		return nil, err
	}
	return o.collect(ctx, list, opts)
}

// Search fetches every page of a collection and keeps the documents
// accepted by m. A nil matcher keeps everything.
func (o *Operations) Search(ctx context.Context, resource Resource, opts theoneapi.RequestOptions, m filter.Matcher) ([]theoneapi.Document, error) {
	docs, err := o.All(ctx, resource, opts)
	if err != nil {
		return nil, err
	}

	matches, err := filter.Apply(ctx, m, docs)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", resource.Plural(), err)
	}

	o.logger.Debug().
		Str("resource", string(resource)).
		Int("fetched", len(docs)).
		Int("matched", len(matches)).
		Msg("Filtered documents")

	return matches, nil
}

func (o *Operations) lister(resource Resource) (listFunc, error) {
	switch resource {
	case ResourceMovie:
		return toPage(resource, o.api.ListMovies), nil
	case ResourceCharacter:
		return toPage(resource, o.api.ListCharacters), nil
	case ResourceBook:
		return toPage(resource, o.api.ListBooks), nil
	case ResourceChapter:
		return toPage(resource, o.api.ListChapters), nil
	case ResourceQuote:
		return toPage(resource, o.api.ListQuotes), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}
}

func (o *Operations) relatedLister(resource Resource, id string) (listFunc, error) {
	related, ok := resource.RelatedResource()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRelation, resource)
	}

	var fetch func(context.Context, string, *theoneapi.RequestOptions) (*Page, error)
	switch resource {
	case ResourceMovie:
		fetch = toRelatedPage(related, o.api.ListMovieQuotes)
	case ResourceCharacter:
		fetch = toRelatedPage(related, o.api.ListCharacterQuotes)
	case ResourceBook:
		fetch = toRelatedPage(related, o.api.ListBookChapters)
	}

	return func(ctx context.Context, opts *theoneapi.RequestOptions) (*Page, error) {
		return fetch(ctx, id, opts)
	}, nil
}

// toPage adapts a typed accessor to one returning a Page
func toPage[T theoneapi.Document, A any](resource Resource, fn func(context.Context, A) (*theoneapi.ListResponse[T], error)) func(context.Context, A) (*Page, error) {
	return func(ctx context.Context, arg A) (*Page, error) {
		resp, err := fn(ctx, arg)
		if err != nil {
			return nil, err
		}
		return newPage(resource, resp), nil
	}
}

func toRelatedPage[T theoneapi.Document](resource Resource, fn func(context.Context, string, *theoneapi.RequestOptions) (*theoneapi.ListResponse[T], error)) func(context.Context, string, *theoneapi.RequestOptions) (*Page, error) {
	return func(ctx context.Context, id string, opts *theoneapi.RequestOptions) (*Page, error) {
		resp, err := fn(ctx, id, opts)
		if err != nil {
			return nil, err
		}
		return newPage(resource, resp), nil
	}
}

func newPage[T theoneapi.Document](resource Resource, resp *theoneapi.ListResponse[T]) *Page {
	docs := make([]theoneapi.Document, len(resp.Docs))
	for i, d := range resp.Docs {
		docs[i] = d
	}
	return &Page{
		Resource: resource,
		Docs:     docs,
		Total:    resp.Total,
		Limit:    resp.Limit,
		Offset:   resp.Offset,
		Page:     resp.Page,
		Pages:    resp.Pages,
	}
}
