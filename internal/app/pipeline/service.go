// Package pipeline runs the collect and merge steps for one playlist request.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/ytplaylen/internal/app/collector"
	"github.com/osa030/ytplaylen/internal/app/merger"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

// Provider is the remote data source for both steps.
type Provider interface {
	collector.PageLister
	merger.DetailLister
}

// Options configures a Service.
type Options struct {
	PageSize       int
	BatchSize      int
	MaxConcurrency int
	AllowPartial   bool
}

// Service fetches playlists and merges their video details.
type Service struct {
	collector *collector.Collector
	merger    *merger.Merger
}

// New creates a new Service backed by provider.
func New(provider Provider, opts Options) *Service {
	return &Service{
		collector: collector.New(provider, opts.PageSize),
		merger: merger.New(provider, merger.Options{
			BatchSize:      opts.BatchSize,
			MaxConcurrency: opts.MaxConcurrency,
			AllowPartial:   opts.AllowPartial,
		}),
	}
}

// FetchPlaylist returns every entry of the playlist at rawURL with its video details.
func (s *Service) FetchPlaylist(ctx context.Context, rawURL string) (*playlist.Result, error) {
	return s.fetch(ctx, rawURL, nil)
}

// FetchPlaylistRange is FetchPlaylist restricted to positions start..end inclusive.
func (s *Service) FetchPlaylistRange(ctx context.Context, rawURL string, start, end int) (*playlist.Result, error) {
	window, err := playlist.NewWindow(start, end)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, rawURL, window)
}

func (s *Service) fetch(ctx context.Context, rawURL string, window *playlist.Window) (*playlist.Result, error) {
	playlistID, err := playlist.ExtractID(rawURL)
	if err != nil {
		return nil, err
	}

	collection, err := s.collector.Collect(ctx, playlistID, window)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to collect playlist %s", playlistID)
	}

	outcome, err := s.merger.Merge(ctx, collection.Entries)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to merge details for playlist %s", playlistID)
	}

	result := &playlist.Result{
		PlaylistID:     playlistID,
		Items:          outcome.Items,
		TotalResults:   collection.TotalResults,
		ResultsPerPage: collection.ResultsPerPage,
		Window:         window,
		Unavailable:    outcome.Unavailable,
		FailedBatches:  outcome.FailedBatches,
	}

	for _, w := range consistencyWarnings(result) {
		zlog.Warn().Msgf("playlist %s %s", playlistID, w)
	}
	zlog.Info().Msgf("fetched playlist %s: items=%d distinct=%d total=%ds unavailable=%d failed_batches=%d",
		playlistID, result.Len(), len(result.VideoIDs()), result.TotalSeconds(), len(result.Unavailable), result.FailedBatches)
	return result, nil
}

// consistencyWarnings reports item counts that exceed what the provider or the window allows.
func consistencyWarnings(r *playlist.Result) []string {
	var warnings []string
	if r.TotalResults > 0 && int64(r.Len()) > r.TotalResults {
		warnings = append(warnings, fmt.Sprintf("returned %d items but reports %d in total", r.Len(), r.TotalResults))
	}
	if r.Window != nil && r.Len() > r.Window.Size() {
		warnings = append(warnings, fmt.Sprintf("returned %d items for the %d positions of %d..%d",
			r.Len(), r.Window.Size(), r.Window.Start, r.Window.End))
	}
	return warnings
}
