// Package youtube provides a client for the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/osa030/ytplaylen/internal/domain/failure"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

var (
	itemParts  = []string{"snippet", "contentDetails"}
	videoParts = []string{"snippet", "contentDetails"}
)

const (
	itemFields = "nextPageToken,pageInfo(totalResults,resultsPerPage)," +
		"items(snippet(publishedAt,title,description,channelTitle,videoOwnerChannelTitle,thumbnails,resourceId/videoId)," +
		"contentDetails(videoId,videoPublishedAt))"
	videoFields = "items(id,snippet(title,publishedAt,thumbnails),contentDetails/duration)"
)

// Client is a YouTube Data API client.
type Client struct {
	service        *ytapi.Service
	requestTimeout time.Duration
	maxAttempts    int
	retryDelay     time.Duration
}

// Config represents YouTube client configuration.
type Config struct {
	APIKey         string
	BaseURL        string // overrides the API endpoint, e.g. for a proxy
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
}

// New creates a new YouTube client.
// Extra options are appended after the ones derived from cfg.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	var clientOpts []option.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.BaseURL))
	}
	clientOpts = append(clientOpts, opts...)
	if len(clientOpts) == 0 {
		return nil, errors.New("youtube API key is required")
	}

	service, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create youtube service")
	}

	c := &Client{
		service:        service,
		requestTimeout: cfg.RequestTimeout,
		maxAttempts:    cfg.MaxAttempts,
		retryDelay:     cfg.RetryDelay,
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = 15 * time.Second
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = 3
	}
	if c.retryDelay <= 0 {
		c.retryDelay = time.Second
	}
	return c, nil
}

// ListPage fetches one page of playlist items.
// An empty pageToken requests the first page.
func (c *Client) ListPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*playlist.Page, error) {
	if pageSize <= 0 || pageSize > playlist.MaxPageSize {
		pageSize = playlist.MaxPageSize
	}
	ref := "first page"
	if pageToken != "" {
		ref = fmt.Sprintf("page token %s", pageToken)
	}

	var response *ytapi.PlaylistItemListResponse
	err := c.do(ctx, failure.StageCollect, ref, func(ctx context.Context) error {
		call := c.service.PlaylistItems.List(itemParts).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			Fields(googleapi.Field(itemFields))
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		r, err := call.Context(ctx).Do()
		if err != nil {
			return err
		}
		response = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := &playlist.Page{
		Entries:       make([]playlist.Entry, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	if response.PageInfo != nil {
		page.TotalResults = response.PageInfo.TotalResults
		page.ResultsPerPage = response.PageInfo.ResultsPerPage
	}
	for _, item := range response.Items {
		page.Entries = append(page.Entries, convertPlaylistItem(item))
	}
	zlog.Debug().Msgf("listed playlist page: playlist=%s %s items=%d next=%t", playlistID, ref, len(page.Entries), page.NextPageToken != "")
	return page, nil
}

// ListVideos fetches details for up to playlist.MaxBatchSize videos.
// Videos the provider does not return (deleted, private) are simply absent.
func (c *Client) ListVideos(ctx context.Context, videoIDs []string) ([]playlist.VideoDetail, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	if len(videoIDs) > playlist.MaxBatchSize {
		return nil, failure.New(failure.KindInvalidInput, failure.StageMerge,
			"too many video IDs in one batch: %d (max %d)", len(videoIDs), playlist.MaxBatchSize)
	}
	ref := fmt.Sprintf("videos %s..%s", videoIDs[0], videoIDs[len(videoIDs)-1])

	var response *ytapi.VideoListResponse
	err := c.do(ctx, failure.StageMerge, ref, func(ctx context.Context) error {
		r, err := c.service.Videos.List(videoParts).
			Id(videoIDs...).
			Fields(googleapi.Field(videoFields)).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		response = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	details := make([]playlist.VideoDetail, 0, len(response.Items))
	for _, v := range response.Items {
		if v == nil || v.Id == "" {
			continue
		}
		details = append(details, convertVideo(v))
	}
	zlog.Debug().Msgf("listed video details: requested=%d returned=%d", len(videoIDs), len(details))
	return details, nil
}

// convertPlaylistItem converts a playlist item to a domain Entry.
func convertPlaylistItem(item *ytapi.PlaylistItem) playlist.Entry {
	var e playlist.Entry
	if item == nil {
		return e
	}
	if item.ContentDetails != nil {
		e.VideoID = item.ContentDetails.VideoId
	}
	if s := item.Snippet; s != nil {
		e.Title = s.Title
		e.Description = s.Description
		e.ChannelTitle = s.ChannelTitle
		e.OwnerChannelTitle = s.VideoOwnerChannelTitle
		e.PublishedAt = parseDate(s.PublishedAt)
		e.ThumbnailURL = thumbnailURL(s.Thumbnails)
		if e.VideoID == "" && s.ResourceId != nil {
			e.VideoID = s.ResourceId.VideoId
		}
	}
	return e
}

// convertVideo converts a video resource to a domain VideoDetail.
func convertVideo(v *ytapi.Video) playlist.VideoDetail {
	d := playlist.VideoDetail{VideoID: v.Id}
	if v.Snippet != nil {
		d.Title = v.Snippet.Title
		d.PublishedAt = parseDate(v.Snippet.PublishedAt)
		d.ThumbnailURL = thumbnailURL(v.Snippet.Thumbnails)
	}
	if v.ContentDetails != nil {
		d.ISODuration = v.ContentDetails.Duration
	}
	return d
}

// thumbnailURL prefers the default thumbnail and falls back to larger ones.
func thumbnailURL(t *ytapi.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*ytapi.Thumbnail{t.Default, t.Medium, t.High, t.Standard, t.Maxres} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	date, err := time.Parse(time.RFC3339, s)
	if err != nil {
		zlog.Debug().Msgf("failed to parse date: %s", s)
		return time.Time{}
	}
	return date
}
