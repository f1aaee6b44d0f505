package pager

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	backLabel    = "<-"
	forwardLabel = "->"
	wireSep      = ":"
)

// ControlIDs holds the identifier of each navigation control role
type ControlIDs struct {
	Back    string
	Label   string
	Forward string
}

// NavBar is the rendered navigation row
type NavBar struct {
	Back    Control
	Label   Control
	Forward Control
}

// Row returns the navigation controls in display order
func (n NavBar) Row() []Control {
	return []Control{n.Back, n.Label, n.Forward}
}

// RenderNav renders the navigation controls for a 1-based page index
func RenderNav(index, total int, ids ControlIDs) NavBar {
	return NavBar{
		Back: Control{
			Kind:     KindButton,
			ID:       ids.Back,
			Label:    backLabel,
			Style:    StyleSuccess,
			Disabled: index == 1,
			Page:     index,
		},
		Label: Control{
			Kind:  KindButton,
			ID:    ids.Label,
			Label: fmt.Sprintf("%d/%d", index, total),
			Style: StyleSecondary,
			Page:  index,
		},
		Forward: Control{
			Kind:     KindButton,
			ID:       ids.Forward,
			Label:    forwardLabel,
			Style:    StyleSuccess,
			Disabled: index == total,
			Page:     index,
		},
	}
}

// FrozenNav renders the navigation controls after the session has ended:
// both arrows are disabled regardless of position.
func FrozenNav(index, total int, ids ControlIDs) NavBar {
	nav := RenderNav(index, total, ids)
	nav.Back.Disabled = true
	nav.Forward.Disabled = true
	return nav
}

// WireID returns the identifier a gateway should attach to the control.
// Navigation controls carry the page they were rendered for ("id:page").
func WireID(c Control) string {
	if c.Page <= 0 {
		return c.ID
	}
	return c.ID + wireSep + strconv.Itoa(c.Page)
}

// ParseWireID splits a wire identifier into control id and page index.
// Page is zero when the identifier has no page suffix.
func ParseWireID(s string) (id string, page int) {
	idx := strings.LastIndex(s, wireSep)
	if idx < 0 {
		return s, 0
	}
	n, err := strconv.Atoi(s[idx+1:])
	if err != nil || n <= 0 {
		return s, 0
	}
	return s[:idx], n
}
