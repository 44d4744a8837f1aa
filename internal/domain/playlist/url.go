package playlist

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osa030/ytplaylen/internal/domain/failure"
)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// ExtractID returns the playlist ID carried by the "list" query parameter.
//
//	https://www.youtube.com/playlist?list=PLCB9F975ECF01953C
//	https://www.youtube.com/watch?v=rbCbho7aLYw&list=PLMpEfaKcGjpWEgNtdnsvLX6LzQL0UC0EM
func ExtractID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", failure.InvalidInput("playlist URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", failure.InvalidInput("invalid playlist URL: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", failure.InvalidInput("invalid playlist URL: unsupported scheme %q", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if !youtubeHosts[host] {
		return "", failure.InvalidInput("invalid playlist URL: %q is not a YouTube host", host)
	}
	id := strings.TrimSpace(parsed.Query().Get("list"))
	if id == "" {
		return "", failure.InvalidInput("playlist URL has no list parameter")
	}
	return id, nil
}

// WatchURL returns the link to a video at its playlist position.
func WatchURL(videoID string, position int) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&index=%d", url.QueryEscape(videoID), position)
}
