package fetch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"royalemeta/internal/dex"
)

// Cache stores fetched movesets between runs so repeat crawls skip the
// network entirely.
type Cache interface {
	Moveset(name string) ([]string, bool, error)
	SaveMoveset(name, dexID string, moves []string) error
}

// Moveset is one crawled species. Err is set when the fetch or parse
// failed; the crawl itself keeps going.
type Moveset struct {
	Name   string
	Dex    string
	Moves  []string
	Cached bool
	Err    error
}

// Crawler fetches movesets for every profile that carries a dex number.
type Crawler struct {
	client  *Client
	cache   Cache
	workers int
}

// NewCrawler wires a crawler. cache may be nil to force network fetches.
func NewCrawler(client *Client, cache Cache, workers int) *Crawler {
	if workers < 1 {
		workers = 1
	}
	return &Crawler{client: client, cache: cache, workers: workers}
}

// Crawl fetches movesets for the given profiles concurrently, bounded by
// the worker count. Results come back in input order. Per-species failures
// are recorded on the Moveset, not returned; only context cancellation
// aborts the crawl.
func (c *Crawler) Crawl(ctx context.Context, targets []dex.Profile) ([]Moveset, error) {
	results := make([]Moveset, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, p := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.fetchOne(ctx, p)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Crawler) fetchOne(ctx context.Context, p dex.Profile) Moveset {
	ms := Moveset{Name: p.Name, Dex: p.Dex}
	if p.Dex == "" {
		ms.Err = fmt.Errorf("%s has no dex number", p.Name)
		return ms
	}

	if c.cache != nil {
		moves, ok, err := c.cache.Moveset(p.Name)
		if err != nil {
			ms.Err = fmt.Errorf("cache lookup for %s: %w", p.Name, err)
			return ms
		}
		if ok {
			ms.Moves = moves
			ms.Cached = true
			return ms
		}
	}

	page, err := c.client.MovesetPage(ctx, p.Dex)
	if err != nil {
		ms.Err = err
		return ms
	}
	ms.Moves = ParseMoves(page)

	if c.cache != nil && len(ms.Moves) > 0 {
		if err := c.cache.SaveMoveset(p.Name, p.Dex, ms.Moves); err != nil {
			ms.Err = fmt.Errorf("caching moveset for %s: %w", p.Name, err)
		}
	}
	return ms
}
