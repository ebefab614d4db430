package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/onering/theoneapi"
)

// collect fetches the first page, then the remaining pages concurrently.
// Documents keep the server's order. Offset is ignored since it would
// shift every page.
func (o *Operations) collect(ctx context.Context, list listFunc, opts theoneapi.RequestOptions) ([]theoneapi.Document, error) {
	base := opts.Clone()
	base.Offset = 0
	base.Page = 1
	if base.Limit <= 0 {
		base.Limit = o.pageSize
	}

	first, err := list(ctx, base)
	if err != nil {
		return nil, err
	}

	if first.Pages <= 1 {
		return first.Docs, nil
	}

	pages := make([][]theoneapi.Document, first.Pages)
	pages[0] = first.Docs

	// Create error group with limited concurrency
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for p := 2; p <= first.Pages; p++ {
		g.Go(func() error {
			pageOpts := base.Clone()
			pageOpts.Page = p

			page, err := list(ctx, pageOpts)
			if err != nil {
				return fmt.Errorf("page %d of %d: %w", p, first.Pages, err)
			}
			pages[p-1] = page.Docs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]theoneapi.Document, 0, first.Total)
	for _, page := range pages {
		docs = append(docs, page...)
	}

	o.logger.Debug().
		Str("resource", string(first.Resource)).
		Int("pages", first.Pages).
		Int("documents", len(docs)).
		Msg("Fetched all pages")

	return docs, nil
}
