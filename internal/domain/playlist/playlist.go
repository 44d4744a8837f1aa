// Package playlist provides the playlist domain entities and their rollups.
package playlist

import "time"

// Entry is one playlist membership record as listed by the provider.
type Entry struct {
	Position          int       // Absolute 1-based position in the playlist
	VideoID           string    // YouTube video ID
	Title             string    // Title from the playlist snippet
	Description       string    // Description from the playlist snippet
	ChannelTitle      string    // Channel that owns the playlist
	OwnerChannelTitle string    // Channel that uploaded the video
	PublishedAt       time.Time // Time the video was added to the playlist
	ThumbnailURL      string    // Thumbnail from the playlist snippet
}

// VideoDetail holds the authoritative facts about a video.
type VideoDetail struct {
	VideoID      string
	Title        string
	ThumbnailURL string
	ISODuration  string    // e.g. "PT1H2M3S"
	PublishedAt  time.Time // Original upload time
}

// Status describes how an entry was enriched.
type Status string

const (
	StatusOK           Status = "ok"
	StatusUnavailable  Status = "unavailable"   // no detail returned (deleted or private video)
	StatusDetailFailed Status = "detail_failed" // the detail batch failed
)

// EnrichedEntry is an Entry merged with its VideoDetail.
type EnrichedEntry struct {
	Entry
	ISODuration     string    // never empty; "PT0S" when unknown
	DurationSeconds int64     // parsed ISODuration
	UploadedAt      time.Time // original upload time
	Status          Status
}

// Available reports whether the entry carries a real duration.
func (e *EnrichedEntry) Available() bool {
	return e.Status == StatusOK
}

// Result is the output of one playlist fetch.
type Result struct {
	PlaylistID     string
	Items          []EnrichedEntry
	TotalResults   int64    // provider-reported size of the whole playlist
	ResultsPerPage int64    // provider page size
	Window         *Window  // nil when the whole playlist was requested
	Unavailable    []string // video IDs without details
	FailedBatches  int      // detail batches that failed (partial mode only)
}

// Len returns the number of items.
func (r *Result) Len() int {
	return len(r.Items)
}

// VideoIDs returns the distinct video IDs in first-seen order.
func (r *Result) VideoIDs() []string {
	seen := make(map[string]bool, len(r.Items))
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		if seen[item.VideoID] {
			continue
		}
		seen[item.VideoID] = true
		ids = append(ids, item.VideoID)
	}
	return ids
}

// TotalSeconds returns the summed duration of all items.
func (r *Result) TotalSeconds() int64 {
	var total int64
	for _, item := range r.Items {
		total += item.DurationSeconds
	}
	return total
}

// AverageSeconds returns the mean duration per item, or 0 for an empty result.
func (r *Result) AverageSeconds() float64 {
	if len(r.Items) == 0 {
		return 0
	}
	return float64(r.TotalSeconds()) / float64(len(r.Items))
}

// PublishedBy returns the uploader of the first item.
func (r *Result) PublishedBy() string {
	if len(r.Items) == 0 {
		return ""
	}
	return r.Items[0].OwnerChannelTitle
}
