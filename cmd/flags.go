package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/filter"
	"github.com/s0up4200/onering/theoneapi"
)

// pagingFlags are shared by every command that lists a collection
type pagingFlags struct {
	limit   int
	page    int
	offset  int
	sort    string
	filters []string
	where   string
	all     bool

	// compiled replaces where when set, e.g. by a preset
	compiled filter.Matcher
}

func (f *pagingFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "maximum documents per page")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number (1-based)")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "number of documents to skip")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "sort as field:asc or field:desc")
	cmd.Flags().StringArrayVarP(&f.filters, "filter", "f", nil, "upstream filter key=value (repeatable), e.g. race=Hobbit,Elf or name=/gandalf/i")
	cmd.Flags().StringVarP(&f.where, "where", "w", "", "local filter expression, e.g. 'hasValue(spouse)'")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "fetch every page")
}

func (f *pagingFlags) options() (*theoneapi.RequestOptions, error) {
	filters, err := catalog.ParseFilters(f.filters)
	if err != nil {
		return nil, err
	}
	return &theoneapi.RequestOptions{
		Limit:  f.limit,
		Page:   f.page,
		Offset: f.offset,
		Sort:   f.sort,
		Filter: filters,
	}, nil
}

func (f *pagingFlags) matcher() (filter.Matcher, error) {
	if f.compiled != nil {
		return f.compiled, nil
	}
	if f.where == "" {
		return nil, nil
	}
	expr, err := filter.Compile(f.where)
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return expr, nil
}

// fetch runs one page or, with --all, every page, then applies --where
func (f *pagingFlags) fetch(ctx context.Context, resource catalog.Resource, list func(*theoneapi.RequestOptions) (*catalog.Page, error), all func(theoneapi.RequestOptions) ([]theoneapi.Document, error)) (*catalog.Page, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	m, err := f.matcher()
	if err != nil {
		return nil, err
	}

	var page *catalog.Page
	if f.all {
		docs, err := all(*opts)
		if err != nil {
			return nil, err
		}
		page = &catalog.Page{Resource: resource, Docs: docs, Total: len(docs), Page: 1, Pages: 1}
	} else {
		page, err = list(opts)
		if err != nil {
			return nil, err
		}
	}

	if m != nil {
		before := len(page.Docs)
		page.Docs, err = filter.Apply(ctx, m, page.Docs)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("where", f.where).
			Int("fetched", before).
			Int("matched", len(page.Docs)).
			Msg("Applied local filter")
	}

	return page, nil
}

// printPage writes a page as JSON or as a tree
func printPage(w io.Writer, page *catalog.Page, paged bool) error {
	if jsonOutput {
		return printJSON(w, page)
	}
	if paged {
		_, err := fmt.Fprint(w, formatter.FormatPage(page))
		return err
	}
	_, err := fmt.Fprint(w, formatter.FormatDocuments(page.Resource, page.Docs))
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
