package render

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Home loads the three sections concurrently. A failing section only degrades itself.
func (r *Renderer) Home(ctx context.Context) HomeView {
	var view HomeView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view.Portfolio = r.Portfolio(gctx)
		return nil
	})
	g.Go(func() error {
		view.Team = r.Team(gctx)
		return nil
	})
	g.Go(func() error {
		view.Reviews = r.Reviews(gctx)
		return nil
	})
	_ = g.Wait()
	return view
}
