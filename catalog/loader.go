package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/qyinm/catalogtui/types"
)

// Load fetches the product and category collections concurrently and returns
// the event to feed Reduce: FetchSucceeded, or FetchFailed with the first
// error. A failure in one fetch cancels the other.
func Load(ctx context.Context, source types.ProductSource) Event {
	var (
		products   []types.Product
		categories []types.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := source.GetProducts(gctx)
		if err != nil {
			return err
		}
		products = p
		return nil
	})
	g.Go(func() error {
		c, err := source.GetCategories(gctx)
		if err != nil {
			return err
		}
		categories = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return FetchFailed{Err: fmt.Errorf("load catalog: %w", err)}
	}
	return FetchSucceeded{Products: products, Categories: categories}
}
