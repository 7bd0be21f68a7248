package card

import (
	"math"
	"testing"
)

func testDeck(n int) Deck {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = New(string(rune('a'+i)), "Card", "", nil)
	}
	return NewDeck(cards)
}

func TestPrimaryMediaPriority(t *testing.T) {
	tests := []struct {
		name  string
		media []Media
		want  MediaKind
	}{
		{"text only", nil, MediaNone},
		{"single image", []Media{{Kind: MediaImage, URL: "a.jpg"}}, MediaImage},
		{"video beats image", []Media{
			{Kind: MediaImage, URL: "a.jpg"},
			{Kind: MediaVideo, URL: "a.mp4"},
		}, MediaVideo},
		{"image beats audio", []Media{
			{Kind: MediaAudio, URL: "a.mp3"},
			{Kind: MediaImage, URL: "a.jpg"},
		}, MediaImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("id", "t", "", tt.media)
			if got := c.PrimaryMedia().Kind; got != tt.want {
				t.Errorf("primary media = %v, want %v", got, tt.want)
			}
			if c.HasMedia() != (tt.want != MediaNone) {
				t.Errorf("HasMedia = %v for %v", c.HasMedia(), tt.want)
			}
		})
	}
}

func TestDeckWrap(t *testing.T) {
	d := testDeck(4)
	tests := []struct {
		i, want int
	}{
		{0, 0}, {4, 0}, {-1, 3}, {5, 1}, {-5, 3},
	}
	for _, tt := range tests {
		if got := d.Wrap(tt.i); got != tt.want {
			t.Errorf("Wrap(%d) = %d, want %d", tt.i, got, tt.want)
		}
	}
}

func TestDeckAt(t *testing.T) {
	d := testDeck(3)
	if d.At(4).ID != d.At(1).ID {
		t.Error("At does not wrap")
	}

	var empty Deck
	if zero := empty.At(2); zero.ID != "" || zero.HasMedia() {
		t.Error("At on an empty deck is not a zero card")
	}
	if empty.Len() != 0 {
		t.Error("empty deck has nonzero length")
	}
}

func TestDeckDistance(t *testing.T) {
	d := testDeck(10)
	tests := []struct {
		a    int
		b    float64
		want float64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 9, -1},      // shorter to go backward
		{0, 5, 5},       // half-way ties resolve positive
		{9, 0.5, 1.5},   // wraps forward past zero
		{2, 1.25, -0.75},
	}
	for _, tt := range tests {
		if got := d.Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Distance(%d, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	var empty Deck
	if empty.Distance(3, 1) != 0 {
		t.Error("Distance on empty deck not 0")
	}
}
