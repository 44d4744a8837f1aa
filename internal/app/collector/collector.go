// Package collector walks the paginated playlist listing.
package collector

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/ytplaylen/internal/domain/failure"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

// PageLister defines the listing operation needed by the Collector.
type PageLister interface {
	ListPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*playlist.Page, error)
}

// Collection is the ordered output of one collection run.
type Collection struct {
	Entries        []playlist.Entry
	TotalResults   int64
	ResultsPerPage int64
	Pages          int // number of listing calls made
}

// Collector collects playlist entries page by page.
type Collector struct {
	lister   PageLister
	pageSize int64
}

// New creates a new Collector. pageSize is clamped to the provider cap.
func New(lister PageLister, pageSize int) *Collector {
	size := int64(pageSize)
	if size <= 0 || size > playlist.MaxPageSize {
		size = playlist.MaxPageSize
	}
	return &Collector{lister: lister, pageSize: size}
}

// Collect returns the entries of the whole playlist, or of window when it is non-nil.
// Positions are absolute, so a window [21, 40] yields positions 21..40.
// Pages past the window end are never requested. Any page failure aborts the run.
func (c *Collector) Collect(ctx context.Context, playlistID string, window *playlist.Window) (*Collection, error) {
	if playlistID == "" {
		return nil, failure.InvalidInput("playlist ID is required")
	}
	if window != nil {
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	result := &Collection{Entries: []playlist.Entry{}}
	position := 1
	pageToken := ""

	for {
		if err := failure.FromContext(ctx, failure.StageCollect, ""); err != nil {
			return nil, err
		}

		page, err := c.lister.ListPage(ctx, playlistID, pageToken, c.pageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list page %d of playlist %s", result.Pages+1, playlistID)
		}
		result.Pages++
		result.TotalResults = page.TotalResults
		result.ResultsPerPage = page.ResultsPerPage

		for _, entry := range page.Entries {
			if window.Contains(position) {
				entry.Position = position
				result.Entries = append(result.Entries, entry)
			}
			position++
		}

		zlog.Debug().Msgf("collected page %d: playlist=%s items=%d kept=%d", result.Pages, playlistID, len(page.Entries), len(result.Entries))

		pageToken = page.NextPageToken
		if pageToken == "" || window.Exhausted(position) {
			break
		}
	}

	zlog.Info().Msgf("collected playlist %s: entries=%d pages=%d total=%d", playlistID, len(result.Entries), result.Pages, result.TotalResults)
	return result, nil
}
