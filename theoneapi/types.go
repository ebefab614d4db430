package theoneapi

import (
	"fmt"
	"math"
)

// Document is implemented by every entity returned by the API
type Document interface {
	// DocumentID returns the upstream _id
	DocumentID() string

	// Fields returns the entity keyed by its JSON field names
	Fields() map[string]any
}

// Movie represents a film of the trilogies
type Movie struct {
	ID                         string  `json:"_id"`
	Name                       string  `json:"name"`
	RuntimeInMinutes           float64 `json:"runtimeInMinutes"`
	BudgetInMillions           float64 `json:"budgetInMillions"`
	BoxOfficeRevenueInMillions float64 `json:"boxOfficeRevenueInMillions"`
	AcademyAwardNominations    float64 `json:"academyAwardNominations"`
	AcademyAwardWins           float64 `json:"academyAwardWins"`
	RottenTomatoesScore        float64 `json:"rottenTomatoesScore"`
}

// DocumentID implements Document
func (m Movie) DocumentID() string { return m.ID }

// Fields implements Document
func (m Movie) Fields() map[string]any {
	return map[string]any{
		"id":                         m.ID,
		"name":                       m.Name,
		"runtimeInMinutes":           m.RuntimeInMinutes,
		"budgetInMillions":           m.BudgetInMillions,
		"boxOfficeRevenueInMillions": m.BoxOfficeRevenueInMillions,
		"academyAwardNominations":    m.AcademyAwardNominations,
		"academyAwardWins":           m.AcademyAwardWins,
		"rottenTomatoesScore":        m.RottenTomatoesScore,
	}
}

// Character represents a person or creature of Middle-earth
type Character struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	WikiURL string `json:"wikiUrl,omitempty"`
	Race    string `json:"race,omitempty"`
	Birth   string `json:"birth,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Death   string `json:"death,omitempty"`
	Hair    string `json:"hair,omitempty"`
	Height  string `json:"height,omitempty"`
	Realm   string `json:"realm,omitempty"`
	Spouse  string `json:"spouse,omitempty"`
}

// DocumentID implements Document
func (c Character) DocumentID() string { return c.ID }

// Fields implements Document
func (c Character) Fields() map[string]any {
	return map[string]any{
		"id":      c.ID,
		"name":    c.Name,
		"wikiUrl": c.WikiURL,
		"race":    c.Race,
		"birth":   c.Birth,
		"gender":  c.Gender,
		"death":   c.Death,
		"hair":    c.Hair,
		"height":  c.Height,
		"realm":   c.Realm,
		"spouse":  c.Spouse,
	}
}

// Book represents one of the books
type Book struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// DocumentID implements Document
func (b Book) DocumentID() string { return b.ID }

// Fields implements Document
func (b Book) Fields() map[string]any {
	return map[string]any{
		"id":   b.ID,
		"name": b.Name,
	}
}

// Chapter represents a chapter of a book
type Chapter struct {
	ID          string `json:"_id"`
	ChapterName string `json:"chapterName"`
	Book        string `json:"book,omitempty"`
}

// DocumentID implements Document
func (c Chapter) DocumentID() string { return c.ID }

// Fields implements Document
func (c Chapter) Fields() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"chapterName": c.ChapterName,
		"book":        c.Book,
	}
}

// Quote represents a line of dialog spoken in a movie
type Quote struct {
	ID        string `json:"_id"`
	Dialog    string `json:"dialog"`
	Movie     string `json:"movie"`
	Character string `json:"character"`
}

// DocumentID implements Document
func (q Quote) DocumentID() string { return q.ID }

// Fields implements Document
func (q Quote) Fields() map[string]any {
	return map[string]any{
		"id":        q.ID,
		"dialog":    q.Dialog,
		"movie":     q.Movie,
		"character": q.Character,
	}
}

// ListResponse is the paginated envelope returned by every endpoint,
// including lookups by id.
type ListResponse[T any] struct {
	Docs   []T `json:"docs"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Page   int `json:"page"`
	Pages  int `json:"pages"`
}

// HasMorePages checks if there are more pages to fetch
func (lr *ListResponse[T]) HasMorePages() bool {
	return lr.Page < lr.Pages
}

// NextPage returns the next page number, or an error if there are no more pages
func (lr *ListResponse[T]) NextPage() (int, error) {
	if !lr.HasMorePages() {
		return 0, fmt.Errorf("%w: page %d of %d", ErrNoMorePages, lr.Page, lr.Pages)
	}
	return lr.Page + 1, nil
}

// First returns the first document. Lookups by id answer with a single
// element list, so this is how callers unwrap them.
func (lr *ListResponse[T]) First() (T, bool) {
	var zero T
	if lr == nil || len(lr.Docs) == 0 {
		return zero, false
	}
	return lr.Docs[0], true
}

// ExpectedPages returns ceil(total/limit), the page count the server
// should report for this envelope. Zero when no limit applies.
func (lr *ListResponse[T]) ExpectedPages() int {
	if lr.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(lr.Total) / float64(lr.Limit)))
}

// ErrorResponse is the body returned alongside a non-2xx status
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
