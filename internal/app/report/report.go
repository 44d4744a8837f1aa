// Package report renders a fetched playlist into its duration summary.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/osa030/ytplaylen/internal/domain/duration"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

// DescriptionLimit is the number of runes kept from a video description.
const DescriptionLimit = 100

// Report is the duration summary of one playlist.
type Report struct {
	PlaylistID       string  `json:"playlist_id" yaml:"playlist_id"`
	TotalVideos      int     `json:"total_videos" yaml:"total_videos"`
	AvailableVideos  int     `json:"available_videos" yaml:"available_videos"`
	PublishedBy      string  `json:"published_by" yaml:"published_by"`
	Unit             string  `json:"unit" yaml:"unit"`
	Speed            string  `json:"speed" yaml:"speed"`
	TotalDuration    string  `json:"total_duration" yaml:"total_duration"`
	PlaybackDuration string  `json:"playback_duration" yaml:"playback_duration"`
	AverageDuration  string  `json:"average_duration" yaml:"average_duration"`
	TotalSeconds     int64   `json:"total_seconds" yaml:"total_seconds"`
	PlaybackSeconds  float64 `json:"playback_seconds" yaml:"playback_seconds"`
	AverageSeconds   float64 `json:"average_seconds" yaml:"average_seconds"`
	Items            []Item  `json:"items" yaml:"items"`
}

// Item is one video line of a Report.
type Item struct {
	Index       int    `json:"index" yaml:"index"`
	VideoID     string `json:"video_id" yaml:"video_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Duration    string `json:"duration" yaml:"duration"`
	Playback    string `json:"playback" yaml:"playback"`
	Seconds     int64  `json:"seconds" yaml:"seconds"`
	Link        string `json:"link" yaml:"link"`
	Status      string `json:"status" yaml:"status"`
}

// Build computes the summary of result in the given unit and speed.
func Build(result *playlist.Result, unit duration.Unit, speed duration.Speed) *Report {
	if speed <= 0 {
		speed = duration.Normal
	}
	if unit == "" {
		unit = duration.Hours
	}

	total := result.TotalSeconds()
	playback := speed.Apply(total)
	average := result.AverageSeconds()

	r := &Report{
		PlaylistID:       result.PlaylistID,
		TotalVideos:      result.Len(),
		PublishedBy:      result.PublishedBy(),
		Unit:             string(unit),
		Speed:            speed.String(),
		TotalDuration:    duration.FormatWithLabel(float64(total), unit),
		PlaybackDuration: duration.FormatWithLabel(playback, unit),
		AverageDuration:  duration.FormatWithLabel(average, unit),
		TotalSeconds:     total,
		PlaybackSeconds:  playback,
		AverageSeconds:   average,
		Items:            make([]Item, 0, result.Len()),
	}

	for _, entry := range result.Items {
		if entry.Available() {
			r.AvailableVideos++
		}
		r.Items = append(r.Items, Item{
			Index:       entry.Position,
			VideoID:     entry.VideoID,
			Title:       entry.Title,
			Description: Truncate(entry.Description, DescriptionLimit),
			Thumbnail:   entry.ThumbnailURL,
			Duration:    duration.Format(float64(entry.DurationSeconds), unit),
			Playback:    duration.Format(speed.Apply(entry.DurationSeconds), unit),
			Seconds:     entry.DurationSeconds,
			Link:        playlist.WatchURL(entry.VideoID, entry.Position),
			Status:      string(entry.Status),
		})
	}
	return r
}

// Truncate keeps the first limit runes of s and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// WriteText writes r as a human readable summary followed by one line per video.
func (r *Report) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Playlist:\t%s\n", r.PlaylistID)
	fmt.Fprintf(tw, "Published by:\t%s\n", r.PublishedBy)
	fmt.Fprintf(tw, "Total videos:\t%d\n", r.TotalVideos)
	fmt.Fprintf(tw, "Available videos:\t%d\n", r.AvailableVideos)
	fmt.Fprintf(tw, "Total duration:\t%s\n", r.TotalDuration)
	fmt.Fprintf(tw, "At %s:\t%s\n", r.Speed, r.PlaybackDuration)
	fmt.Fprintf(tw, "Average duration:\t%s\n", r.AverageDuration)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "#\tDURATION\tPLAYBACK\tSTATUS\tTITLE")
	for _, item := range r.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", item.Index, item.Duration, item.Playback, item.Status, item.Title)
	}
	return tw.Flush()
}
