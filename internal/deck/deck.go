// Package deck loads named page decks from YAML files
package deck

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zinin/pagerbot/internal/embed"
	"github.com/zinin/pagerbot/internal/pager"
	"github.com/zinin/pagerbot/internal/telegram"
)

// ErrDeckNotFound is returned when a deck name is unknown
var ErrDeckNotFound = errors.New("deck not found")

type controlSpec struct {
	Type        string       `yaml:"type"` // button, link, select
	ID          string       `yaml:"id"`
	Label       string       `yaml:"label"`
	Style       string       `yaml:"style"`
	URL         string       `yaml:"url"`
	Disabled    bool         `yaml:"disabled"`
	Placeholder string       `yaml:"placeholder"`
	Options     []optionSpec `yaml:"options"`
}

type optionSpec struct {
	Label       string `yaml:"label"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

type pageSpec struct {
	Content  string        `yaml:"content"`
	Embed    *embed.Embed  `yaml:"embed"`
	Controls []controlSpec `yaml:"controls"`
}

type deckSpec struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Controls    []controlSpec `yaml:"controls"`
	Pages       []pageSpec    `yaml:"pages"`
}

type fileSpec struct {
	Decks []deckSpec `yaml:"decks"`
}

// Deck is a named list of pages with optional controls shown on every page
type Deck struct {
	Name               string
	Description        string
	Pages              []pager.Page
	AdditionalControls []pager.Control
}

// Library holds the decks of one file in file order
type Library struct {
	decks []Deck
	index map[string]int
}

// Load reads a deck file
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Parse builds a Library from YAML. Every page is validated.
func Parse(data []byte) (*Library, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse decks: %w", err)
	}
	if len(spec.Decks) == 0 {
		return nil, errors.New("no decks defined")
	}

	lib := &Library{index: make(map[string]int)}
	for i, ds := range spec.Decks {
		d, err := buildDeck(ds)
		if err != nil {
			return nil, fmt.Errorf("deck %d (%q): %w", i+1, ds.Name, err)
		}
		key := strings.ToLower(d.Name)
		if _, dup := lib.index[key]; dup {
			return nil, fmt.Errorf("duplicate deck name %q", d.Name)
		}
		lib.index[key] = len(lib.decks)
		lib.decks = append(lib.decks, d)
	}
	return lib, nil
}

// Names returns deck names in file order
func (l *Library) Names() []string {
	names := make([]string, len(l.decks))
	for i, d := range l.decks {
		names[i] = d.Name
	}
	return names
}

// Decks returns all decks in file order
func (l *Library) Decks() []Deck {
	return append([]Deck(nil), l.decks...)
}

// Deck returns the named deck (case-insensitive). Empty name selects the first deck.
func (l *Library) Deck(name string) (Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return l.decks[0], nil
	}
	i, ok := l.index[strings.ToLower(name)]
	if !ok {
		return Deck{}, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
	}
	return l.decks[i], nil
}

func buildDeck(ds deckSpec) (Deck, error) {
	if strings.TrimSpace(ds.Name) == "" {
		return Deck{}, errors.New("name is required")
	}
	if len(ds.Pages) == 0 {
		return Deck{}, pager.ErrNoPages
	}

	extra, err := buildControls(ds.Controls)
	if err != nil {
		return Deck{}, fmt.Errorf("controls: %w", err)
	}

	pages := make([]pager.Page, 0, len(ds.Pages))
	for i, ps := range ds.Pages {
		controls, err := buildControls(ps.Controls)
		if err != nil {
			return Deck{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		var e any
		if !ps.Embed.IsZero() {
			e = ps.Embed
		}
		p, err := pager.NewPage(ps.Content, e, controls...)
		if err != nil {
			return Deck{}, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, p)
	}

	// Page rows and deck-wide rows share the same row budget
	if _, err := pager.NewSession(pages, pager.SessionOptions{
		AdditionalControls: extra,
		IDs:                &pager.SequenceGenerator{Prefix: "check"},
	}); err != nil {
		return Deck{}, err
	}

	return Deck{
		Name:               ds.Name,
		Description:        ds.Description,
		Pages:              pages,
		AdditionalControls: extra,
	}, nil
}

func buildControls(specs []controlSpec) ([]pager.Control, error) {
	controls := make([]pager.Control, 0, len(specs))
	for i, cs := range specs {
		c, err := buildControl(cs)
		if err != nil {
			return nil, fmt.Errorf("control %d: %w", i+1, err)
		}
		controls = append(controls, c)
	}
	return controls, nil
}

func buildControl(cs controlSpec) (pager.Control, error) {
	var c pager.Control
	switch strings.ToLower(cs.Type) {
	case "", "button":
		if cs.ID == "" {
			return c, errors.New("button id is required")
		}
		if err := checkCallbackData(cs.ID); err != nil {
			return c, err
		}
		style, err := parseStyle(cs.Style)
		if err != nil {
			return c, err
		}
		c = pager.Button(cs.ID, cs.Label, style)
	case "link":
		if cs.URL == "" {
			return c, errors.New("link url is required")
		}
		c = pager.LinkButton(cs.Label, cs.URL)
	case "select":
		if cs.ID == "" {
			return c, errors.New("select id is required")
		}
		if len(cs.Options) == 0 {
			return c, errors.New("select needs at least one option")
		}
		opts := make([]pager.SelectOption, len(cs.Options))
		for i, o := range cs.Options {
			if err := checkCallbackData(telegram.SelectData(cs.ID, o.Value)); err != nil {
				return c, fmt.Errorf("option %d: %w", i+1, err)
			}
			opts[i] = pager.SelectOption{Label: o.Label, Value: o.Value, Description: o.Description}
		}
		c = pager.Select(cs.ID, cs.Placeholder, opts...)
	default:
		return c, fmt.Errorf("unknown control type %q", cs.Type)
	}
	c.Disabled = cs.Disabled
	return c, nil
}

// checkCallbackData keeps control data within what a Telegram button can carry
func checkCallbackData(data string) error {
	if len(data) > telegram.MaxCallbackData {
		return fmt.Errorf("callback data %q is %d bytes, at most %d allowed", data, len(data), telegram.MaxCallbackData)
	}
	return nil
}

func parseStyle(s string) (pager.ButtonStyle, error) {
	switch strings.ToLower(s) {
	case "", "secondary":
		return pager.StyleSecondary, nil
	case "primary":
		return pager.StylePrimary, nil
	case "success":
		return pager.StyleSuccess, nil
	case "danger":
		return pager.StyleDanger, nil
	default:
		return pager.StyleSecondary, fmt.Errorf("unknown button style %q", s)
	}
}
