package playlist

import "github.com/osa030/ytplaylen/internal/domain/duration"

const (
	// ZeroDuration is the encoded duration of entries without details.
	ZeroDuration = "PT0S"
	// UnavailableTitle replaces an empty title on entries without details.
	UnavailableTitle = "Unavailable video"
)

// Enrich merges details into entries and returns new records in entry order.
// Every entry sharing a video ID receives the same detail. Entries whose video ID is
// in failed get StatusDetailFailed; other entries without a detail get StatusUnavailable.
// Both fall back to a zero duration.
func Enrich(entries []Entry, details map[string]VideoDetail, failed map[string]bool) []EnrichedEntry {
	out := make([]EnrichedEntry, len(entries))
	for i, e := range entries {
		d, ok := details[e.VideoID]
		if !ok {
			status := StatusUnavailable
			if failed[e.VideoID] {
				status = StatusDetailFailed
			}
			out[i] = fallback(e, status)
			continue
		}

		enriched := EnrichedEntry{
			Entry:       e,
			ISODuration: d.ISODuration,
			UploadedAt:  d.PublishedAt,
			Status:      StatusOK,
		}
		if d.Title != "" {
			enriched.Title = d.Title
		}
		if d.ThumbnailURL != "" {
			enriched.ThumbnailURL = d.ThumbnailURL
		}
		if enriched.ISODuration == "" {
			// Live streams that have not started report no duration.
			enriched.ISODuration = ZeroDuration
		}
		enriched.DurationSeconds = duration.ParseSeconds(enriched.ISODuration)
		out[i] = enriched
	}
	return out
}

func fallback(e Entry, status Status) EnrichedEntry {
	if e.Title == "" {
		e.Title = UnavailableTitle
	}
	return EnrichedEntry{
		Entry:       e,
		ISODuration: ZeroDuration,
		Status:      status,
	}
}

// MissingIDs returns the distinct, non-empty video IDs of entries with the given status.
func MissingIDs(items []EnrichedEntry, status Status) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range items {
		if item.Status != status || item.VideoID == "" || seen[item.VideoID] {
			continue
		}
		seen[item.VideoID] = true
		ids = append(ids, item.VideoID)
	}
	return ids
}
