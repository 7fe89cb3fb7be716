/* Copyright (c) 2025 FuturesLab <https://futureslab.github.io>
 * SPDX-License-Identifier: BSD-3-Clause */
package aggregate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/FuturesLab/futureslab.github.io/internal/config"
	"github.com/FuturesLab/futureslab.github.io/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrNoSources = errors.New("aggregate: no sources configured")

type fetcher interface {
	Fetch(ctx context.Context, name string) ([]domain.BugRecord, error)
}

// Aggregator produces one complete Report per load: every configured source
// document fetched, or none rendered at all. Fetches run concurrently but
// the merged collection keeps the declared source order.
type Aggregator struct {
	cfg     config.Config
	log     zerolog.Logger
	fetcher fetcher

	mu       sync.Mutex
	snapshot *domain.Report
}

func New(cfg config.Config, log zerolog.Logger, f fetcher) *Aggregator {
	return &Aggregator{cfg: cfg, log: log, fetcher: f}
}

// Fetch returns the merged report for the configured source list. A failure
// on any single source fails the whole call; partial results are never
// returned. When CACHE_TTL is set, a fresh enough snapshot is reused.
func (a *Aggregator) Fetch(ctx context.Context) (*domain.Report, error) {
	a.mu.Lock()
	if a.snapshot != nil && a.cfg.CacheTTL > 0 && time.Since(a.snapshot.FetchedAt) < a.cfg.CacheTTL {
		rep := a.snapshot
		a.mu.Unlock()
		return rep, nil
	}
	a.mu.Unlock()

	rep, err := a.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.snapshot = rep
	a.mu.Unlock()
	return rep, nil
}

func (a *Aggregator) fetchAll(ctx context.Context) (*domain.Report, error) {
	sources := a.cfg.BugsSources
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if a.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()
	}

	// Fan-out: one slot per declared source so merge order is independent
	// of completion order. First error cancels the rest.
	slots := make([][]domain.BugRecord, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.MaxConcurrency > 0 {
		g.SetLimit(a.cfg.MaxConcurrency)
	}
	for i, name := range sources {
		i, name := i, name
		g.Go(func() error {
			recs, err := a.fetcher.Fetch(gctx, name)
			if err != nil {
				return err
			}
			slots[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("bug source load failed")
		return nil, err
	}

	rep := &domain.Report{FetchedAt: time.Now()}
	for i, recs := range slots {
		sc := domain.SourceCount{Name: sources[i]}
		for _, r := range recs {
			if err := r.Validate(); err != nil {
				sc.Skipped++
				a.log.Warn().Str("source", sources[i]).Str("id", r.ID).Err(err).Msg("skipping invalid record")
				continue
			}
			rep.Records = append(rep.Records, r)
			sc.Records++
		}
		rep.Sources = append(rep.Sources, sc)
	}
	return rep, nil
}
