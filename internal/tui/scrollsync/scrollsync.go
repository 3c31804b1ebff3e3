// Package scrollsync keeps the label, table and timeline panes of the
// timeline view scrolled together.
//
// A scroll on one pane is copied to the others. While a copy is in flight,
// and for a short cooldown after it, further scroll events are suppressed so
// that the events raised by the copy itself do not bounce back. A source that
// was suppressed is replayed once the cooldown ends, so a fast user scroll is
// never lost.
package scrollsync

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultCooldown is how long events stay suppressed after a propagation.
const DefaultCooldown = 40 * time.Millisecond

// PaneID names one of the synchronized panes.
type PaneID int

const (
	Labels PaneID = iota
	Table
	Timeline
	// Header follows the timeline horizontally and is never a source.
	Header
)

func (id PaneID) String() string {
	switch id {
	case Labels:
		return "labels"
	case Table:
		return "table"
	case Timeline:
		return "timeline"
	case Header:
		return "header"
	}
	return fmt.Sprintf("pane(%d)", int(id))
}

// ErrNotSource is returned when OnScroll is called for a pane that cannot
// drive the others.
var ErrNotSource = errors.New("pane is not a scroll source")

// Pane is a scrollable region.
type Pane interface {
	ScrollTop() int
	ScrollLeft() int
	SetScrollTop(top int) error
	SetScrollLeft(left int) error
}

// Timer is the handle returned by AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run once after d.
// f runs on whatever goroutine the implementation chooses.
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc schedules f with time.AfterFunc.
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithCooldown overrides DefaultCooldown.
func WithCooldown(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d >= 0 {
			s.cooldown = d
		}
	}
}

// WithAfterFunc replaces the timer used for the cooldown.
func WithAfterFunc(after AfterFunc) Option {
	return func(s *Synchronizer) {
		if after != nil {
			s.after = after
		}
	}
}

// Synchronizer propagates scroll offsets between panes.
// Fields are ordered to minimize memory padding.
type Synchronizer struct {
	timer      Timer
	after      AfterFunc
	panes      [4]Pane
	cooldown   time.Duration
	pending    PaneID
	mu         sync.Mutex
	busy       bool
	hasPending bool
	closed     bool
}

// New creates a Synchronizer over the given panes.
func New(labels, table, timeline, header Pane, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		panes:    [4]Pane{labels, table, timeline, header},
		cooldown: DefaultCooldown,
		after:    StdAfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnScroll copies the offsets of src to the other panes. The vertical offset
// goes to the other two row panes and, when src is the timeline, its
// horizontal offset goes to the header. It reports false when the event was
// suppressed by an earlier propagation or the synchronizer is closed.
func (s *Synchronizer) OnScroll(src PaneID) (bool, error) {
	if src < Labels || src > Timeline {
		return false, fmt.Errorf("%w: %s", ErrNotSource, src)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, nil
	}
	if s.busy {
		s.pending = src
		s.hasPending = true
		s.mu.Unlock()
		return false, nil
	}
	s.busy = true
	s.mu.Unlock()

	defer s.arm()
	return true, s.propagate(src)
}

func (s *Synchronizer) propagate(src PaneID) error {
	from := s.panes[src]
	top := from.ScrollTop()

	var errs []error
	for _, id := range []PaneID{Labels, Table, Timeline} {
		if id == src {
			continue
		}
		if err := s.panes[id].SetScrollTop(top); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	if src == Timeline {
		if err := s.panes[Header].SetScrollLeft(from.ScrollLeft()); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", Header, err))
		}
	}
	return errors.Join(errs...)
}

// Restore applies preserved offsets to every pane, typically after the
// panes were rebuilt by a refresh. It is not subject to suppression but
// starts a cooldown like any propagation.
func (s *Synchronizer) Restore(top, left int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.busy = true
	s.mu.Unlock()

	defer s.arm()

	var errs []error
	for _, id := range []PaneID{Labels, Table, Timeline} {
		if err := s.panes[id].SetScrollTop(top); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	for _, id := range []PaneID{Timeline, Header} {
		if err := s.panes[id].SetScrollLeft(left); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// arm (re)starts the cooldown. It runs deferred so that a failing or
// panicking setter still releases the guard.
func (s *Synchronizer) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.closed {
		s.busy = false
		return
	}
	s.timer = s.after(s.cooldown, s.release)
}

func (s *Synchronizer) release() {
	s.mu.Lock()
	s.busy = false
	s.timer = nil
	src, replay := s.pending, s.hasPending
	s.hasPending = false
	closed := s.closed
	s.mu.Unlock()

	if replay && !closed && !s.inSync(src) {
		_, _ = s.OnScroll(src)
	}
}

// inSync reports whether every pane already matches src.
func (s *Synchronizer) inSync(src PaneID) bool {
	top := s.panes[src].ScrollTop()
	for _, id := range []PaneID{Labels, Table, Timeline} {
		if s.panes[id].ScrollTop() != top {
			return false
		}
	}
	return s.panes[Timeline].ScrollLeft() == s.panes[Header].ScrollLeft()
}

// Busy reports whether events are currently suppressed.
func (s *Synchronizer) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Close stops the cooldown timer. Later events are ignored.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.busy = false
	s.hasPending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
