package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/ytplaylen/internal/domain/duration"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

func sampleResult() *playlist.Result {
	entry := func(pos int, id string, secs int64) playlist.EnrichedEntry {
		return playlist.EnrichedEntry{
			Entry: playlist.Entry{
				Position:          pos,
				VideoID:           id,
				Title:             "Video " + id,
				OwnerChannelTitle: "Channel",
			},
			DurationSeconds: secs,
			Status:          playlist.StatusOK,
		}
	}
	return &playlist.Result{
		PlaylistID: "PLtest",
		Items: []playlist.EnrichedEntry{
			entry(1, "a", 300),
			entry(2, "b", 3600),
			entry(3, "c", 30),
		},
		TotalResults: 3,
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name             string
		unit             duration.Unit
		speed            duration.Speed
		expectedTotal    string
		expectedPlayback string
		expectedAverage  string
		expectedPlaySecs float64
	}{
		{
			name:             "hours at normal speed",
			unit:             duration.Hours,
			speed:            duration.Normal,
			expectedTotal:    "1:05:30 Hrs",
			expectedPlayback: "1:05:30 Hrs",
			expectedAverage:  "0:21:50 Hrs",
			expectedPlaySecs: 3930,
		},
		{
			name:             "hours at double speed",
			unit:             duration.Hours,
			speed:            2,
			expectedTotal:    "1:05:30 Hrs",
			expectedPlayback: "0:32:45 Hrs",
			expectedAverage:  "0:21:50 Hrs",
			expectedPlaySecs: 1965,
		},
		{
			name:             "minutes",
			unit:             duration.Minutes,
			speed:            duration.Normal,
			expectedTotal:    "65:30 Min",
			expectedPlayback: "65:30 Min",
			expectedAverage:  "21:50 Min",
			expectedPlaySecs: 3930,
		},
		{
			name:             "seconds at half speed",
			unit:             duration.Seconds,
			speed:            0.5,
			expectedTotal:    "3930 Sec",
			expectedPlayback: "7860 Sec",
			expectedAverage:  "1310 Sec",
			expectedPlaySecs: 7860,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(sampleResult(), tt.unit, tt.speed)

			assert.Equal(t, "PLtest", r.PlaylistID)
			assert.Equal(t, 3, r.TotalVideos)
			assert.Equal(t, 3, r.AvailableVideos)
			assert.Equal(t, "Channel", r.PublishedBy)
			assert.Equal(t, tt.expectedTotal, r.TotalDuration)
			assert.Equal(t, tt.expectedPlayback, r.PlaybackDuration)
			assert.Equal(t, tt.expectedAverage, r.AverageDuration)
			assert.Equal(t, int64(3930), r.TotalSeconds)
			assert.InDelta(t, tt.expectedPlaySecs, r.PlaybackSeconds, 0.001)
			assert.InDelta(t, 1310, r.AverageSeconds, 0.001)
			require.Len(t, r.Items, 3)
		})
	}
}

func TestBuild_Items(t *testing.T) {
	result := sampleResult()
	result.Items[1].Description = strings.Repeat("あ", 150)
	result.Items[2].Status = playlist.StatusUnavailable
	result.Items[2].DurationSeconds = 0

	r := Build(result, duration.Hours, 2)

	item := r.Items[1]
	assert.Equal(t, 2, item.Index)
	assert.Equal(t, "Video b", item.Title)
	assert.Equal(t, "1:00:00", item.Duration)
	assert.Equal(t, "0:30:00", item.Playback)
	assert.Equal(t, "https://www.youtube.com/watch?v=b&index=2", item.Link)
	assert.Equal(t, "ok", item.Status)
	assert.Equal(t, strings.Repeat("あ", 100)+"...", item.Description)

	assert.Equal(t, "unavailable", r.Items[2].Status)
	assert.Equal(t, "0:00:00", r.Items[2].Duration)
	assert.Equal(t, 3, r.TotalVideos)
	assert.Equal(t, 2, r.AvailableVideos)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(&playlist.Result{PlaylistID: "PLempty"}, "", 0)

	assert.Equal(t, 0, r.TotalVideos)
	assert.Equal(t, 0, r.AvailableVideos)
	assert.Equal(t, "", r.PublishedBy)
	assert.Equal(t, "0:00:00 Hrs", r.TotalDuration)
	assert.Equal(t, "0:00:00 Hrs", r.AverageDuration)
	assert.Equal(t, "1x", r.Speed)
	assert.NotNil(t, r.Items)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "short", input: "hello", limit: 10, expected: "hello"},
		{name: "exact", input: "hello", limit: 5, expected: "hello"},
		{name: "cut", input: "hello world", limit: 5, expected: "hello..."},
		{name: "multibyte", input: "日本語テキスト", limit: 3, expected: "日本語..."},
		{name: "empty", input: "", limit: 3, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.limit))
		})
	}
}

func TestReport_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(sampleResult(), duration.Hours, 2).WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "PLtest")
	assert.Contains(t, out, "1:05:30 Hrs")
	assert.Contains(t, out, "At 2x:")
	assert.Contains(t, out, "0:32:45 Hrs")
	assert.Contains(t, out, "Video c")
	assert.Regexp(t, `Available videos:\s+3\n`, out)
	assert.Equal(t, 3+9, strings.Count(out, "\n"))
}
