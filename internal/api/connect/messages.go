// Package connect provides Connect RPC service implementations.
package connect

import "github.com/osa030/ytplaylen/internal/app/report"

// FetchPlaylistRequest asks for the duration report of one playlist.
type FetchPlaylistRequest struct {
	URL   string `json:"url"`
	Start int    `json:"start,omitempty"` // 1-based, inclusive
	End   int    `json:"end,omitempty"`   // inclusive
	Unit  string `json:"unit,omitempty"`  // hrs, min or sec
	Speed string `json:"speed,omitempty"` // e.g. "1.5" or "1.5x"
}

// FetchPlaylistResponse carries the playlist report.
type FetchPlaylistResponse struct {
	PlaylistID     string         `json:"playlist_id"`
	TotalResults   int64          `json:"total_results"`
	ResultsPerPage int64          `json:"results_per_page"`
	Unavailable    []string       `json:"unavailable"`
	FailedBatches  int            `json:"failed_batches"`
	Report         *report.Report `json:"report"`
}
