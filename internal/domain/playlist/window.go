package playlist

import "github.com/osa030/ytplaylen/internal/domain/failure"

// Window is an inclusive 1-based position range.
type Window struct {
	Start int
	End   int
}

// NewWindow creates a validated window.
func NewWindow(start, end int) (*Window, error) {
	w := &Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks that start >= 1 and start < end.
func (w *Window) Validate() error {
	if w.Start < 1 {
		return failure.InvalidInput("start (%d) must be greater than 0", w.Start)
	}
	if w.Start >= w.End {
		return failure.InvalidInput("start (%d) must be less than end (%d)", w.Start, w.End)
	}
	return nil
}

// Contains reports whether position lies inside the window.
// A nil window contains every position.
func (w *Window) Contains(position int) bool {
	if w == nil {
		return true
	}
	return position >= w.Start && position <= w.End
}

// Exhausted reports whether no position at or after next can fall inside the window.
func (w *Window) Exhausted(next int) bool {
	if w == nil {
		return false
	}
	return next > w.End
}

// Size returns the number of positions covered.
func (w *Window) Size() int {
	return w.End - w.Start + 1
}
