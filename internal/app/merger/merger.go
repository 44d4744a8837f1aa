// Package merger enriches collected playlist entries with video details.
package merger

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/duke-git/lancet/v2/slice"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/osa030/ytplaylen/internal/domain/failure"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

// DetailLister defines the detail lookup needed by the Merger.
type DetailLister interface {
	ListVideos(ctx context.Context, videoIDs []string) ([]playlist.VideoDetail, error)
}

// Options configures a Merger.
type Options struct {
	BatchSize      int  // IDs per detail call, clamped to the provider cap
	MaxConcurrency int  // detail calls in flight
	AllowPartial   bool // keep going when a batch fails
}

// Outcome is the result of one merge.
type Outcome struct {
	Items         []playlist.EnrichedEntry
	Unavailable   []string // video IDs the provider returned no detail for
	FailedBatches int
	Batches       int
}

// Inconsistency returns a PartialDataInconsistency error describing degraded
// entries, or nil when every entry was enriched.
func (o *Outcome) Inconsistency() error {
	if len(o.Unavailable) == 0 && o.FailedBatches == 0 {
		return nil
	}
	var parts []string
	if n := len(o.Unavailable); n > 0 {
		parts = append(parts, fmt.Sprintf("%d videos without details", n))
	}
	if o.FailedBatches > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d detail batches failed", o.FailedBatches, o.Batches))
	}
	return failure.New(failure.KindPartialDataInconsistency, failure.StageMerge, "%s", strings.Join(parts, ", "))
}

// Merger fetches video details in batches and merges them into entries.
type Merger struct {
	lister         DetailLister
	batchSize      int
	maxConcurrency int
	allowPartial   bool
}

// New creates a new Merger.
func New(lister DetailLister, opts Options) *Merger {
	m := &Merger{
		lister:         lister,
		batchSize:      opts.BatchSize,
		maxConcurrency: opts.MaxConcurrency,
		allowPartial:   opts.AllowPartial,
	}
	if m.batchSize <= 0 || m.batchSize > playlist.MaxBatchSize {
		m.batchSize = playlist.MaxBatchSize
	}
	if m.maxConcurrency <= 0 {
		m.maxConcurrency = 1
	}
	return m
}

// Merge returns entries enriched with their video details, in input order.
// Distinct video IDs are split into disjoint batches fetched concurrently; the
// merge itself runs after all batches complete, so completion order is irrelevant.
func (m *Merger) Merge(ctx context.Context, entries []playlist.Entry) (*Outcome, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.VideoID != "" {
			ids = append(ids, e.VideoID)
		}
	}
	batches := slice.Chunk(slice.Unique(ids), m.batchSize)

	results := make([][]playlist.VideoDetail, len(batches))
	batchErrs := make([]error, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.maxConcurrency)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			details, err := m.lister.ListVideos(gctx, batch)
			if err != nil {
				err = errors.Wrapf(err, "failed to fetch details for batch %d/%d", i+1, len(batches))
				if m.allowPartial && !failure.Is(err, failure.KindCanceled) {
					zlog.Warn().Msgf("detail batch %d/%d failed, continuing: %v", i+1, len(batches), err)
					batchErrs[i] = err
					return nil
				}
				return err
			}
			results[i] = details
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := failure.FromContext(ctx, failure.StageMerge, ""); err != nil {
		return nil, err
	}

	details := make(map[string]playlist.VideoDetail, len(ids))
	failed := make(map[string]bool)
	outcome := &Outcome{Batches: len(batches)}
	for i, batch := range batches {
		if batchErrs[i] != nil {
			outcome.FailedBatches++
			for _, id := range batch {
				failed[id] = true
			}
			continue
		}
		for _, d := range results[i] {
			details[d.VideoID] = d
		}
	}

	outcome.Items = playlist.Enrich(entries, details, failed)
	outcome.Unavailable = playlist.MissingIDs(outcome.Items, playlist.StatusUnavailable)

	if err := outcome.Inconsistency(); err != nil {
		zlog.Warn().Msgf("merged with degraded entries: %v", err)
	}
	zlog.Debug().Msgf("merged details: entries=%d distinct=%d batches=%d", len(entries), len(details), len(batches))
	return outcome, nil
}
