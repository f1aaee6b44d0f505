package pager

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned when a session is created without pages
var ErrNoPages = errors.New("no pages to paginate")

// State is the lifecycle state of a session
type State int

const (
	StateActive State = iota
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SessionOptions configures a Session
type SessionOptions struct {
	OwnerID            string
	Ephemeral          bool
	AdditionalControls []Control
	IDs                IDGenerator
}

// Render is the materialized message at a point in time
type Render struct {
	Content string
	Embed   any
	Rows    [][]Control // page controls
	Nav     NavBar
	Extra   [][]Control // additional controls shown on every page
}

// Components returns all control rows in display order:
// page rows, navigation row, additional rows.
func (r Render) Components() [][]Control {
	rows := make([][]Control, 0, len(r.Rows)+1+len(r.Extra))
	rows = append(rows, copyRows(r.Rows)...)
	rows = append(rows, r.Nav.Row())
	rows = append(rows, copyRows(r.Extra)...)
	return rows
}

// Session is the navigation state of one paginated message.
// A Session is owned by a single dispatch loop and is not safe for
// concurrent use.
type Session struct {
	pages     []Page
	current   int // 1-based
	state     State
	ids       ControlIDs
	extra     [][]Control
	ownerID   string
	ephemeral bool
}

// NewSession creates an active session showing the first page
func NewSession(pages []Page, opts SessionOptions) (*Session, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	extra, err := partition(opts.AdditionalControls)
	if err != nil {
		return nil, fmt.Errorf("additional controls: %w", err)
	}
	for i, p := range pages {
		if n := len(p.rows) + len(extra); n > MaxPageRows {
			return nil, fmt.Errorf("%w: page %d has %d rows with additional controls, at most %d allowed",
				ErrInvalidPageLayout, i+1, n, MaxPageRows)
		}
	}

	gen := opts.IDs
	if gen == nil {
		gen = UUIDGenerator{}
	}
	ids, err := newControlIDs(gen)
	if err != nil {
		return nil, err
	}

	return &Session{
		pages:     append([]Page(nil), pages...),
		current:   1,
		state:     StateActive,
		ids:       ids,
		extra:     extra,
		ownerID:   opts.OwnerID,
		ephemeral: opts.Ephemeral,
	}, nil
}

// Current returns the 1-based index of the displayed page
func (s *Session) Current() int {
	return s.current
}

// Total returns the number of pages
func (s *Session) Total() int {
	return len(s.pages)
}

func (s *Session) State() State {
	return s.state
}

// IDs returns the navigation control identifiers
func (s *Session) IDs() ControlIDs {
	return s.ids
}

func (s *Session) OwnerID() string {
	return s.ownerID
}

func (s *Session) Ephemeral() bool {
	return s.ephemeral
}

// Advance moves to the next page. Returns false without changing state
// when already on the last page or the session has ended.
func (s *Session) Advance() bool {
	if s.state != StateActive || s.current >= len(s.pages) {
		return false
	}
	s.current++
	return true
}

// Retreat moves to the previous page. Returns false without changing state
// when already on the first page or the session has ended.
func (s *Session) Retreat() bool {
	if s.state != StateActive || s.current <= 1 {
		return false
	}
	s.current--
	return true
}

// Timeout ends the session. Subsequent renders have navigation disabled.
func (s *Session) Timeout() {
	s.state = StateTimedOut
}

// Render returns the current page with its controls
func (s *Session) Render() Render {
	page := s.pages[s.current-1]

	nav := RenderNav(s.current, len(s.pages), s.ids)
	if s.state == StateTimedOut {
		nav = FrozenNav(s.current, len(s.pages), s.ids)
	}

	return Render{
		Content: page.content,
		Embed:   page.embed,
		Rows:    copyRows(page.rows),
		Nav:     nav,
		Extra:   copyRows(s.extra),
	}
}
