package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

// mockAPI implements theoneapi.API for testing
type mockAPI struct {
	movies     []theoneapi.Movie
	characters []theoneapi.Character
	books      []theoneapi.Book
	chapters   []theoneapi.Chapter
	quotes     []theoneapi.Quote

	err     error
	failOn  int // page number that fails, 0 for none
	mu      sync.Mutex
	calls   []string
	options []theoneapi.RequestOptions
}

func (m *mockAPI) record(call string, opts *theoneapi.RequestOptions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if opts != nil {
		m.options = append(m.options, *opts)
	}
}

// paginate slices docs the way the upstream does
func paginate[T any](m *mockAPI, docs []T, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[T], error) {
	if m.err != nil {
		return nil, m.err
	}

	limit, page := 1000, 1
	if opts != nil && opts.Limit > 0 {
		limit = opts.Limit
	}
	if opts != nil && opts.Page > 0 {
		page = opts.Page
	}
	if m.failOn != 0 && page == m.failOn {
		return nil, &theoneapi.Error{Kind: theoneapi.KindAPI, StatusCode: 500, Message: "Something went wrong."}
	}

	start := min((page-1)*limit, len(docs))
	end := min(start+limit, len(docs))
	return &theoneapi.ListResponse[T]{
		Docs:  docs[start:end],
		Total: len(docs),
		Limit: limit,
		Page:  page,
		Pages: (len(docs) + limit - 1) / limit,
	}, nil
}

func byID[T theoneapi.Document](m *mockAPI, docs []T, id string) (*theoneapi.ListResponse[T], error) {
	if m.err != nil {
		return nil, m.err
	}
	resp := &theoneapi.ListResponse[T]{Docs: []T{}, Limit: 1000, Page: 1}
	for _, d := range docs {
		if d.DocumentID() == id {
			resp.Docs = append(resp.Docs, d)
		}
	}
	resp.Total = len(resp.Docs)
	resp.Pages = resp.Total
	return resp, nil
}

func (m *mockAPI) ListMovies(ctx context.Context, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Movie], error) {
	m.record("ListMovies", opts)
	return paginate(m, m.movies, opts)
}

func (m *mockAPI) GetMovie(ctx context.Context, id string) (*theoneapi.ListResponse[theoneapi.Movie], error) {
	m.record("GetMovie", nil)
	return byID(m, m.movies, id)
}

func (m *mockAPI) ListMovieQuotes(ctx context.Context, id string, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Quote], error) {
	m.record("ListMovieQuotes", opts)
	var quotes []theoneapi.Quote
	for _, q := range m.quotes {
		if q.Movie == id {
			quotes = append(quotes, q)
		}
	}
	return paginate(m, quotes, opts)
}

func (m *mockAPI) ListCharacters(ctx context.Context, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Character], error) {
	m.record("ListCharacters", opts)
	return paginate(m, m.characters, opts)
}

func (m *mockAPI) GetCharacter(ctx context.Context, id string) (*theoneapi.ListResponse[theoneapi.Character], error) {
	m.record("GetCharacter", nil)
	return byID(m, m.characters, id)
}

func (m *mockAPI) ListCharacterQuotes(ctx context.Context, id string, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Quote], error) {
	m.record("ListCharacterQuotes", opts)
	var quotes []theoneapi.Quote
	for _, q := range m.quotes {
		if q.Character == id {
			quotes = append(quotes, q)
		}
	}
	return paginate(m, quotes, opts)
}

func (m *mockAPI) ListBooks(ctx context.Context, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Book], error) {
	m.record("ListBooks", opts)
	return paginate(m, m.books, opts)
}

func (m *mockAPI) GetBook(ctx context.Context, id string) (*theoneapi.ListResponse[theoneapi.Book], error) {
	m.record("GetBook", nil)
	return byID(m, m.books, id)
}

func (m *mockAPI) ListBookChapters(ctx context.Context, id string, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Chapter], error) {
	m.record("ListBookChapters", opts)
	var chapters []theoneapi.Chapter
	for _, c := range m.chapters {
		if c.Book == id {
			chapters = append(chapters, c)
		}
	}
	return paginate(m, chapters, opts)
}

func (m *mockAPI) ListQuotes(ctx context.Context, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Quote], error) {
	m.record("ListQuotes", opts)
	return paginate(m, m.quotes, opts)
}

func (m *mockAPI) GetQuote(ctx context.Context, id string) (*theoneapi.ListResponse[theoneapi.Quote], error) {
	m.record("GetQuote", nil)
	return byID(m, m.quotes, id)
}

func (m *mockAPI) ListChapters(ctx context.Context, opts *theoneapi.RequestOptions) (*theoneapi.ListResponse[theoneapi.Chapter], error) {
	m.record("ListChapters", opts)
	return paginate(m, m.chapters, opts)
}

func (m *mockAPI) GetChapter(ctx context.Context, id string) (*theoneapi.ListResponse[theoneapi.Chapter], error) {
	m.record("GetChapter", nil)
	return byID(m, m.chapters, id)
}

func newMockAPI() *mockAPI {
	m := &mockAPI{
		movies: []theoneapi.Movie{
			{ID: "m1", Name: "The Fellowship of the Ring", AcademyAwardWins: 4},
			{ID: "m2", Name: "The Two Towers", AcademyAwardWins: 2},
			{ID: "m3", Name: "The Return of the King", AcademyAwardWins: 11},
		},
		characters: []theoneapi.Character{
			{ID: "c1", Name: "Frodo Baggins", Race: "Hobbit"},
			{ID: "c2", Name: "Gandalf", Race: "Maiar"},
		},
		books: []theoneapi.Book{
			{ID: "b1", Name: "The Fellowship Of The Ring"},
		},
		chapters: []theoneapi.Chapter{
			{ID: "ch1", ChapterName: "A Long-expected Party", Book: "b1"},
			{ID: "ch2", ChapterName: "The Shadow of the Past", Book: "b1"},
		},
	}
	for i := range 25 {
		m.quotes = append(m.quotes, theoneapi.Quote{
			ID:        fmt.Sprintf("q%02d", i),
			Dialog:    fmt.Sprintf("line %d", i),
			Movie:     "m" + fmt.Sprint(i%3+1),
			Character: "c" + fmt.Sprint(i%2+1),
		})
	}
	return m
}

func TestParseResource(t *testing.T) {
	tests := []struct {
		input   string
		want    Resource
		wantErr bool
	}{
		{"movie", ResourceMovie, false},
		{"Movies", ResourceMovie, false},
		{" characters ", ResourceCharacter, false},
		{"book", ResourceBook, false},
		{"chapters", ResourceChapter, false},
		{"QUOTE", ResourceQuote, false},
		{"ring", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseResource(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownResource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelatedResource(t *testing.T) {
	related, ok := ResourceMovie.RelatedResource()
	assert.True(t, ok)
	assert.Equal(t, ResourceQuote, related)

	related, ok = ResourceBook.RelatedResource()
	assert.True(t, ok)
	assert.Equal(t, ResourceChapter, related)

	_, ok = ResourceQuote.RelatedResource()
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	api := newMockAPI()
	ops := NewOperations(api, zerolog.Nop())

	page, err := ops.List(context.Background(), ResourceQuote, &theoneapi.RequestOptions{Limit: 10, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, ResourceQuote, page.Resource)
	assert.Len(t, page.Docs, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, "q10", page.Docs[0].DocumentID())

	_, err = ops.List(context.Background(), Resource("ring"), nil)
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestGet(t *testing.T) {
	api := newMockAPI()
	ops := NewOperations(api, zerolog.Nop())
	ctx := context.Background()

	for _, tt := range []struct {
		resource Resource
		id       string
	}{
		{ResourceMovie, "m2"},
		{ResourceCharacter, "c1"},
		{ResourceBook, "b1"},
		{ResourceChapter, "ch2"},
		{ResourceQuote, "q07"},
	} {
		t.Run(string(tt.resource), func(t *testing.T) {
			doc, err := ops.Get(ctx, tt.resource, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.id, doc.DocumentID())
		})
	}

	t.Run("not found", func(t *testing.T) {
		_, err := ops.Get(ctx, ResourceMovie, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("api error propagates", func(t *testing.T) {
		failing := newMockAPI()
		failing.err = &theoneapi.Error{Kind: theoneapi.KindAPI, StatusCode: 401, Message: "Unauthorized"}
		_, err := NewOperations(failing, zerolog.Nop()).Get(ctx, ResourceMovie, "m1")
		require.Error(t, err)

		var apiErr *theoneapi.Error
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsUnauthorized())
	})
}

func TestRelated(t *testing.T) {
	api := newMockAPI()
	ops := NewOperations(api, zerolog.Nop())
	ctx := context.Background()

	quotes, err := ops.Related(ctx, ResourceMovie, "m1", &theoneapi.RequestOptions{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, ResourceQuote, quotes.Resource)
	assert.Len(t, quotes.Docs, 3)
	for _, doc := range quotes.Docs {
		assert.Equal(t, "m1", doc.(theoneapi.Quote).Movie)
	}

	chapters, err := ops.Related(ctx, ResourceBook, "b1", nil)
	require.NoError(t, err)
	assert.Equal(t, ResourceChapter, chapters.Resource)
	assert.Len(t, chapters.Docs, 2)

	characterQuotes, err := ops.Related(ctx, ResourceCharacter, "c2", nil)
	require.NoError(t, err)
	assert.Len(t, characterQuotes.Docs, 12)

	_, err = ops.Related(ctx, ResourceChapter, "ch1", nil)
	assert.ErrorIs(t, err, ErrNoRelation)
}

func TestAll(t *testing.T) {
	t.Run("fetches every page in order", func(t *testing.T) {
		api := newMockAPI()
		ops := NewOperations(api, zerolog.Nop())
		ops.SetPageSize(4)
		ops.SetConcurrency(3)

		docs, err := ops.All(context.Background(), ResourceQuote, theoneapi.RequestOptions{
			Offset: 5,
			Sort:   theoneapi.SortAsc("dialog"),
		})
		require.NoError(t, err)
		require.Len(t, docs, 25)
		for i, doc := range docs {
			assert.Equal(t, fmt.Sprintf("q%02d", i), doc.DocumentID())
		}

		assert.Len(t, api.calls, 7)
		for _, opts := range api.options {
			assert.Equal(t, 4, opts.Limit)
			assert.Zero(t, opts.Offset)
			assert.Equal(t, "dialog:asc", opts.Sort)
		}
	})

	t.Run("single page", func(t *testing.T) {
		api := newMockAPI()
		docs, err := NewOperations(api, zerolog.Nop()).All(context.Background(), ResourceMovie, theoneapi.RequestOptions{})
		require.NoError(t, err)
		assert.Len(t, docs, 3)
		assert.Equal(t, []string{"ListMovies"}, api.calls)
	})

	t.Run("failing page aborts", func(t *testing.T) {
		api := newMockAPI()
		api.failOn = 3
		ops := NewOperations(api, zerolog.Nop())

		docs, err := ops.All(context.Background(), ResourceQuote, theoneapi.RequestOptions{Limit: 5})
		require.Error(t, err)
		assert.Nil(t, docs)
		assert.Contains(t, err.Error(), "page 3 of 5")
	})

	t.Run("related", func(t *testing.T) {
		api := newMockAPI()
		docs, err := NewOperations(api, zerolog.Nop()).AllRelated(context.Background(), ResourceMovie, "m3", theoneapi.RequestOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, docs, 8)
	})

	t.Run("caller filter is not modified", func(t *testing.T) {
		api := newMockAPI()
		opts := theoneapi.RequestOptions{Limit: 10, Filter: map[string]string{"movie": "m1"}}
		_, err := NewOperations(api, zerolog.Nop()).All(context.Background(), ResourceQuote, opts)
		require.NoError(t, err)
		assert.Equal(t, 0, opts.Page)
		assert.Equal(t, map[string]string{"movie": "m1"}, opts.Filter)
	})
}

func TestSearch(t *testing.T) {
	api := newMockAPI()
	ops := NewOperations(api, zerolog.Nop())

	expr, err := filter.Compile(`academyAwardWins > 3`)
	require.NoError(t, err)

	docs, err := ops.Search(context.Background(), ResourceMovie, theoneapi.RequestOptions{}, expr)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "m1", docs[0].DocumentID())
	assert.Equal(t, "m3", docs[1].DocumentID())

	all, err := ops.Search(context.Background(), ResourceMovie, theoneapi.RequestOptions{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bad, err := filter.Compile(`academyAwardWins > 3`)
	require.NoError(t, err)
	_, err = ops.Search(context.Background(), ResourceCharacter, theoneapi.RequestOptions{}, bad)
	require.Error(t, err)
	var evalErr *filter.EvaluationError
	assert.True(t, errors.As(err, &evalErr))
}
