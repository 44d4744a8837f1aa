// Package failure provides the typed errors returned by the playlist pipeline.
package failure

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindUnknown                  Kind = "unknown"
	KindInvalidInput             Kind = "invalid_input"
	KindUpstreamUnavailable      Kind = "upstream_unavailable"
	KindUpstreamRejected         Kind = "upstream_rejected"
	KindPartialDataInconsistency Kind = "partial_data_inconsistency"
	KindCanceled                 Kind = "canceled"
)

// Stage identifies the pipeline step that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageCollect  Stage = "collect"
	StageMerge    Stage = "merge"
)

// Error is a classified pipeline error.
type Error struct {
	Kind   Kind
	Stage  Stage
	Ref    string // page cursor, batch index or video ID
	Status int    // HTTP status reported by the provider (0 if none)
	cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	if e.Ref != "" {
		msg += " (" + e.Ref + ")"
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" [http %d]", e.Status)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a classified error without a cause.
func New(kind Kind, stage Stage, format string, args ...any) error {
	return &Error{Kind: kind, Stage: stage, cause: errors.Newf(format, args...)}
}

// Wrap classifies err. A nil err returns nil.
func Wrap(err error, kind Kind, stage Stage, ref string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Ref: ref, cause: err}
}

// WithStatus is Wrap with the HTTP status the provider answered.
func WithStatus(err error, kind Kind, stage Stage, ref string, status int) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Ref: ref, Status: status, cause: err}
}

// InvalidInput reports a caller mistake detected before any network call.
func InvalidInput(format string, args ...any) error {
	err := New(KindInvalidInput, StageValidate, format, args...)
	return errors.WithHint(err, "check the playlist URL and the requested range")
}

// FromContext converts a context error into a Canceled failure.
// Returns nil when ctx is still live.
func FromContext(ctx context.Context, stage Stage, ref string) error {
	if ctx.Err() == nil {
		return nil
	}
	return Wrap(ctx.Err(), KindCanceled, stage, ref)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// KindOf returns the kind of err.
// Bare context errors are reported as KindCanceled.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if fe, ok := As(err); ok {
		return fe.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}
	return KindUnknown
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
