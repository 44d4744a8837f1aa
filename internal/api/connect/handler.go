package connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// PlaylistServiceName is the fully-qualified name of the PlaylistService.
	PlaylistServiceName = "ytplaylen.v1.PlaylistService"

	// FetchPlaylistProcedure is the path of the PlaylistService.FetchPlaylist RPC.
	FetchPlaylistProcedure = "/ytplaylen.v1.PlaylistService/FetchPlaylist"
)

// PlaylistServiceHandler is implemented by the server side of the service.
type PlaylistServiceHandler interface {
	FetchPlaylist(context.Context, *connect.Request[FetchPlaylistRequest]) (*connect.Response[FetchPlaylistResponse], error)
}

// NewPlaylistServiceHandler builds an HTTP handler for svc.
// It returns the path on which to mount the handler and the handler itself.
func NewPlaylistServiceHandler(svc PlaylistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	fetchPlaylist := connect.NewUnaryHandler(FetchPlaylistProcedure, svc.FetchPlaylist, opts...)

	return "/" + PlaylistServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case FetchPlaylistProcedure:
			fetchPlaylist.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PlaylistServiceClient is a client for the PlaylistService.
type PlaylistServiceClient struct {
	fetchPlaylist *connect.Client[FetchPlaylistRequest, FetchPlaylistResponse]
}

// NewPlaylistServiceClient creates a client for the service at baseURL, e.g. "http://localhost:8080".
func NewPlaylistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlaylistServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &PlaylistServiceClient{
		fetchPlaylist: connect.NewClient[FetchPlaylistRequest, FetchPlaylistResponse](
			httpClient,
			baseURL+FetchPlaylistProcedure,
			opts...,
		),
	}
}

// FetchPlaylist calls ytplaylen.v1.PlaylistService.FetchPlaylist.
func (c *PlaylistServiceClient) FetchPlaylist(ctx context.Context, req *connect.Request[FetchPlaylistRequest]) (*connect.Response[FetchPlaylistResponse], error) {
	return c.fetchPlaylist.CallUnary(ctx, req)
}
