// Package card defines the content cards the carousel advances through.
//
// Cards are immutable values supplied by the surrounding application; the
// engine only ever reads them. A deck is an ordered, cyclic sequence —
// index arithmetic wraps at both ends.
package card

// MediaKind identifies the type of a media reference.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaNone  MediaKind = "none" // text-only card
)

// mediaPriority is the conventional ordering used to pick a card's primary
// media: video > image > audio > text.
var mediaPriority = map[MediaKind]int{
	MediaVideo: 3,
	MediaImage: 2,
	MediaAudio: 1,
	MediaNone:  0,
}

// Media is a single media reference attached to a card.
type Media struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url"`

	// Aspect is the natural width/height ratio, 0 if not yet known.
	Aspect float64 `json:"aspect,omitempty"`
}

// Card is one entry in the onboarding sequence.
type Card struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Body  string  `json:"body,omitempty"`
	Media []Media `json:"media,omitempty"`

	// primary is resolved once at construction, never re-derived.
	primary Media
}

// New builds a card and resolves its primary media by priority.
func New(id, title, body string, media []Media) Card {
	c := Card{ID: id, Title: title, Body: body, Media: media}
	c.primary = Media{Kind: MediaNone}
	for _, m := range media {
		if mediaPriority[m.Kind] > mediaPriority[c.primary.Kind] {
			c.primary = m
		}
	}
	return c
}

// PrimaryMedia returns the highest-priority media reference, or a MediaNone
// value for text-only cards.
func (c Card) PrimaryMedia() Media {
	if c.primary.Kind == "" {
		return Media{Kind: MediaNone}
	}
	return c.primary
}

// HasMedia reports whether the card carries any playable media.
func (c Card) HasMedia() bool {
	return c.PrimaryMedia().Kind != MediaNone
}
