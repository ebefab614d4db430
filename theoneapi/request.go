package theoneapi

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
)

// RequestOptions holds pagination, sorting and filtering for list endpoints.
// Zero values are omitted from the query string.
type RequestOptions struct {
	Limit  int
	Page   int
	Offset int
	// Sort is "<field>:asc" or "<field>:desc"
	Sort string
	// Filter entries are sent verbatim as additional query parameters
	Filter map[string]string
}

// SortAsc returns a sort expression ordering by field ascending
func SortAsc(field string) string {
	return field + ":asc"
}

// SortDesc returns a sort expression ordering by field descending
func SortDesc(field string) string {
	return field + ":desc"
}

// Values encodes the options as query parameters
func (o *RequestOptions) Values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}

	if o.Limit != 0 {
		params.Add("limit", strconv.Itoa(o.Limit))
	}
	if o.Page != 0 {
		params.Add("page", strconv.Itoa(o.Page))
	}
	if o.Offset != 0 {
		params.Add("offset", strconv.Itoa(o.Offset))
	}
	if o.Sort != "" {
		params.Add("sort", o.Sort)
	}

	// Sorted so the same options always produce the same URL
	for _, k := range slices.Sorted(maps.Keys(o.Filter)) {
		params.Add(k, o.Filter[k])
	}

	return params
}

// Clone returns a deep copy of the options
func (o *RequestOptions) Clone() *RequestOptions {
	if o == nil {
		return nil
	}
	c := *o
	if o.Filter != nil {
		c.Filter = make(map[string]string, len(o.Filter))
		maps.Copy(c.Filter, o.Filter)
	}
	return &c
}
