package connect

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"

	"github.com/osa030/ytplaylen/internal/app/report"
	"github.com/osa030/ytplaylen/internal/domain/duration"
	"github.com/osa030/ytplaylen/internal/domain/failure"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
)

// HintHeader carries user-facing hints attached to an error.
const HintHeader = "X-Error-Hint"

// Fetcher runs the playlist pipeline.
type Fetcher interface {
	FetchPlaylist(ctx context.Context, rawURL string) (*playlist.Result, error)
	FetchPlaylistRange(ctx context.Context, rawURL string, start, end int) (*playlist.Result, error)
}

// PlaylistService implements the PlaylistService RPC.
type PlaylistService struct {
	fetcher Fetcher
	unit    duration.Unit
	speed   duration.Speed
}

// NewPlaylistService creates a new PlaylistService.
// unit and speed apply when a request leaves them empty.
func NewPlaylistService(fetcher Fetcher, unit duration.Unit, speed duration.Speed) *PlaylistService {
	return &PlaylistService{
		fetcher: fetcher,
		unit:    unit,
		speed:   speed,
	}
}

// Ensure PlaylistService implements the interface.
var _ PlaylistServiceHandler = (*PlaylistService)(nil)

// FetchPlaylist handles playlist duration requests.
func (s *PlaylistService) FetchPlaylist(
	ctx context.Context,
	req *connect.Request[FetchPlaylistRequest],
) (*connect.Response[FetchPlaylistResponse], error) {
	unit := s.unit
	if req.Msg.Unit != "" {
		u, err := duration.ParseUnit(req.Msg.Unit)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		unit = u
	}
	speed := s.speed
	if req.Msg.Speed != "" {
		sp, err := duration.ParseSpeed(req.Msg.Speed)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		speed = sp
	}

	var (
		result *playlist.Result
		err    error
	)
	if req.Msg.Start == 0 && req.Msg.End == 0 {
		result, err = s.fetcher.FetchPlaylist(ctx, req.Msg.URL)
	} else {
		result, err = s.fetcher.FetchPlaylistRange(ctx, req.Msg.URL, req.Msg.Start, req.Msg.End)
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	unavailable := result.Unavailable
	if unavailable == nil {
		unavailable = []string{}
	}
	return connect.NewResponse(&FetchPlaylistResponse{
		PlaylistID:     result.PlaylistID,
		TotalResults:   result.TotalResults,
		ResultsPerPage: result.ResultsPerPage,
		Unavailable:    unavailable,
		FailedBatches:  result.FailedBatches,
		Report:         report.Build(result, unit, speed),
	}), nil
}

// toConnectError maps a pipeline failure to its RPC status code.
func toConnectError(err error) *connect.Error {
	code := connect.CodeInternal
	switch failure.KindOf(err) {
	case failure.KindInvalidInput:
		code = connect.CodeInvalidArgument
	case failure.KindUpstreamRejected:
		code = connect.CodeFailedPrecondition
		if fe, ok := failure.As(err); ok && fe.Status == 404 {
			code = connect.CodeNotFound
		}
	case failure.KindUpstreamUnavailable:
		code = connect.CodeUnavailable
	case failure.KindCanceled:
		code = connect.CodeCanceled
		if errors.Is(err, context.DeadlineExceeded) {
			code = connect.CodeDeadlineExceeded
		}
	}

	ce := connect.NewError(code, err)
	if hints := errors.FlattenHints(err); hints != "" {
		ce.Meta().Set(HintHeader, strings.ReplaceAll(hints, "\n", "; "))
	}
	return ce
}
