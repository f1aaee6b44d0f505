// Package pager implements paginated message navigation: pages, the
// navigation control renderer, the per-message session state machine and
// the dispatch loop that drives it through a messaging gateway.
package pager

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxRowWidth is the maximum number of controls in one row
	MaxRowWidth = 5
	// MaxPageRows is the maximum number of control rows a page may carry.
	// One more row is reserved for navigation.
	MaxPageRows = 4
)

var (
	// ErrInvalidPageLayout is returned when page controls do not fit the row limits
	ErrInvalidPageLayout = errors.New("invalid page layout")
	// ErrInvalidControlID is returned for control ids that would be
	// ambiguous on the wire
	ErrInvalidControlID = errors.New("invalid control id")
)

// ControlKind distinguishes buttons from select menus
type ControlKind int

const (
	KindButton ControlKind = iota
	KindSelect
)

// ButtonStyle is the visual style of a button
type ButtonStyle int

const (
	StyleSecondary ButtonStyle = iota
	StylePrimary
	StyleSuccess
	StyleDanger
	StyleLink
)

// SelectOption is one choice of a select control
type SelectOption struct {
	Label       string
	Value       string
	Description string
}

// Control is an interactive element attached to a message.
// The pager only inspects Kind; the rest is passed to the gateway.
type Control struct {
	Kind        ControlKind
	ID          string
	Label       string
	Style       ButtonStyle
	URL         string
	Disabled    bool
	Placeholder string
	Options     []SelectOption

	// Page is the page index a navigation control was rendered for.
	// Zero for caller-supplied controls.
	Page int
}

// Button creates a button control
func Button(id, label string, style ButtonStyle) Control {
	return Control{Kind: KindButton, ID: id, Label: label, Style: style}
}

// LinkButton creates a button that opens a URL
func LinkButton(label, url string) Control {
	return Control{Kind: KindButton, Label: label, Style: StyleLink, URL: url}
}

// Select creates a select control
func Select(id, placeholder string, options ...SelectOption) Control {
	return Control{Kind: KindSelect, ID: id, Placeholder: placeholder, Options: options}
}

// IsSelect reports whether the control must occupy a row of its own
func (c Control) IsSelect() bool {
	return c.Kind == KindSelect
}

// Page is one navigable unit of content. Immutable after construction.
type Page struct {
	content string
	embed   any
	rows    [][]Control
}

// NewPage builds a page, packing controls into rows.
// A select control takes a row of its own; other controls fill rows of
// MaxRowWidth. More than MaxPageRows rows fails with ErrInvalidPageLayout.
func NewPage(content string, embed any, controls ...Control) (Page, error) {
	rows, err := partition(controls)
	if err != nil {
		return Page{}, err
	}
	return Page{content: content, embed: embed, rows: rows}, nil
}

// NewPageRows builds a page from controls already grouped into rows
func NewPageRows(content string, embed any, rows [][]Control) (Page, error) {
	if err := validateRows(rows); err != nil {
		return Page{}, err
	}
	return Page{content: content, embed: embed, rows: copyRows(rows)}, nil
}

// MustPage is like NewPage but panics on an invalid layout
func MustPage(content string, embed any, controls ...Control) Page {
	p, err := NewPage(content, embed, controls...)
	if err != nil {
		panic(err)
	}
	return p
}

// Content returns the page text, possibly empty
func (p Page) Content() string {
	return p.content
}

// Embed returns the opaque rich-content block, or nil
func (p Page) Embed() any {
	return p.embed
}

// Rows returns a copy of the page control rows
func (p Page) Rows() [][]Control {
	return copyRows(p.rows)
}

// partition packs controls into rows following the select/width rules
func partition(controls []Control) ([][]Control, error) {
	var rows [][]Control
	var current []Control

	for _, c := range controls {
		if err := checkID(c.ID); err != nil {
			return nil, err
		}
		if c.IsSelect() {
			if len(current) > 0 {
				rows = append(rows, current)
				current = nil
			}
			rows = append(rows, []Control{c})
			continue
		}
		if len(current) == MaxRowWidth {
			rows = append(rows, current)
			current = nil
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	if len(rows) > MaxPageRows {
		return nil, fmt.Errorf("%w: %d rows, at most %d allowed", ErrInvalidPageLayout, len(rows), MaxPageRows)
	}
	return rows, nil
}

func validateRows(rows [][]Control) error {
	if len(rows) > MaxPageRows {
		return fmt.Errorf("%w: %d rows, at most %d allowed", ErrInvalidPageLayout, len(rows), MaxPageRows)
	}
	for i, row := range rows {
		if len(row) == 0 || len(row) > MaxRowWidth {
			return fmt.Errorf("%w: row %d has %d controls", ErrInvalidPageLayout, i+1, len(row))
		}
		for _, c := range row {
			if err := checkID(c.ID); err != nil {
				return err
			}
			if c.IsSelect() && len(row) > 1 {
				return fmt.Errorf("%w: select %q shares row %d", ErrInvalidPageLayout, c.ID, i+1)
			}
		}
	}
	return nil
}

// checkID rejects ids containing the wire separator, which would be read
// back as a page suffix
func checkID(id string) error {
	if strings.Contains(id, wireSep) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidControlID, id, wireSep)
	}
	return nil
}

func copyRows(rows [][]Control) [][]Control {
	if rows == nil {
		return nil
	}
	cp := make([][]Control, len(rows))
	for i, row := range rows {
		cp[i] = append([]Control(nil), row...)
	}
	return cp
}
