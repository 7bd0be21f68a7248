// Package profile loads the external collaborator data the engine
// consumes: the ordered card deck, the theme descriptor and the orbit
// token fills. The engine only ever reads a profile; the surrounding
// application owns its lifecycle.
package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/card"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/carousel"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/orbit"
)

var (
	// ErrNoCards is returned for a profile without any cards.
	ErrNoCards = errors.New("profile has no cards")

	// ErrDuplicateCard is returned when two cards share an id.
	ErrDuplicateCard = errors.New("duplicate card id")
)

// mediaYAML is one media reference in the profile file.
type mediaYAML struct {
	Kind   string  `yaml:"kind"`
	URL    string  `yaml:"url"`
	Aspect float64 `yaml:"aspect"`
}

// cardYAML is one card entry in the profile file.
type cardYAML struct {
	ID    string      `yaml:"id"`
	Title string      `yaml:"title"`
	Body  string      `yaml:"body"`
	Media []mediaYAML `yaml:"media"`
}

// tokenYAML is one orbit token entry.
type tokenYAML struct {
	Fill  float64 `yaml:"fill"`
	Color string  `yaml:"color"`
}

// themeYAML is the theme descriptor.
type themeYAML struct {
	Font    string `yaml:"font"`
	Primary string `yaml:"primary"`
	Accent  string `yaml:"accent"`
}

// fileYAML is the top-level profile document.
type fileYAML struct {
	Theme  themeYAML   `yaml:"theme"`
	Cards  []cardYAML  `yaml:"cards"`
	Tokens []tokenYAML `yaml:"tokens"`
}

// Profile is the loaded collaborator data.
type Profile struct {
	Deck   card.Deck
	Theme  carousel.Theme
	Tokens []orbit.Token
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates profile YAML.
func Parse(raw []byte) (*Profile, error) {
	var doc fileYAML
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if len(doc.Cards) == 0 {
		return nil, ErrNoCards
	}

	seen := make(map[string]bool, len(doc.Cards))
	cards := make([]card.Card, 0, len(doc.Cards))
	for _, c := range doc.Cards {
		if c.ID == "" {
			return nil, fmt.Errorf("card %q: empty id", c.Title)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("card %q: %w", c.ID, ErrDuplicateCard)
		}
		seen[c.ID] = true

		media := make([]card.Media, 0, len(c.Media))
		for _, m := range c.Media {
			kind, err := parseKind(m.Kind)
			if err != nil {
				return nil, fmt.Errorf("card %q: %w", c.ID, err)
			}
			media = append(media, card.Media{Kind: kind, URL: m.URL, Aspect: m.Aspect})
		}
		cards = append(cards, card.New(c.ID, c.Title, c.Body, media))
	}

	tokens := make([]orbit.Token, 0, len(doc.Tokens))
	for _, t := range doc.Tokens {
		fill := t.Fill
		if fill < 0 {
			fill = 0
		}
		if fill > 100 {
			fill = 100
		}
		tokens = append(tokens, orbit.Token{Fill: fill, Color: t.Color})
	}

	return &Profile{
		Deck: card.NewDeck(cards),
		Theme: carousel.Theme{
			Font:    doc.Theme.Font,
			Primary: doc.Theme.Primary,
			Accent:  doc.Theme.Accent,
		},
		Tokens: tokens,
	}, nil
}

func parseKind(s string) (card.MediaKind, error) {
	switch s {
	case "video":
		return card.MediaVideo, nil
	case "image":
		return card.MediaImage, nil
	case "audio":
		return card.MediaAudio, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}
