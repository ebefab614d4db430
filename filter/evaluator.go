package filter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/onering/theoneapi"
)

// concurrentThreshold is the document count above which Apply evaluates in chunks
const concurrentThreshold = 500

// Apply returns the documents accepted by m, preserving order. A nil
// matcher accepts everything. Evaluation stops at the first error.
func Apply(ctx context.Context, m Matcher, docs []theoneapi.Document) ([]theoneapi.Document, error) {
	if m == nil {
		return docs, nil
	}
	if len(docs) < concurrentThreshold {
		return applySequential(ctx, m, docs)
	}
	return applyConcurrent(ctx, m, docs)
}

func applySequential(ctx context.Context, m Matcher, docs []theoneapi.Document) ([]theoneapi.Document, error) {
	matches := make([]theoneapi.Document, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := m.Match(doc)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

func applyConcurrent(ctx context.Context, m Matcher, docs []theoneapi.Document) ([]theoneapi.Document, error) {
	chunkSize := concurrentThreshold / 2
	chunks := make([][]theoneapi.Document, (len(docs)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(docs))

		g.Go(func() error {
			matches, err := applySequential(ctx, m, docs[start:end])
			if err != nil {
				return err
			}
			chunks[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, c := range chunks {
		total += len(c)
	}
	all := make([]theoneapi.Document, 0, total)
	for _, c := range chunks {
		all = append(all, c...)
	}
	return all, nil
}
