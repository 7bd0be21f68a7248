package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/card"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/carousel"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	deck := card.NewDeck([]card.Card{
		card.New("a", "One", "", nil),
		card.New("b", "Two", "", nil),
		card.New("c", "Three", "", nil),
	})
	car := carousel.New(deck, carousel.DefaultOptions())
	car.Start(pinning.Viewport{Width: 1200, Height: 800}, time.Now())

	var s *Server
	runner := carousel.NewRunner(car, 60, func(snap carousel.Snapshot) {
		s.BroadcastSnapshot(snap)
	})
	s = NewServer("0", t.TempDir(), runner, StaticTokenProvider{})
	return s
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["cards"])
	assert.Equal(t, "idle", body["phase"])
}

func TestDeckEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/deck", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Cards []card.Card    `json:"cards"`
		Theme carousel.Theme `json:"theme"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Cards, 3)
	assert.Equal(t, "a", body.Cards[0].ID)
}

func TestTuningRoundTrip(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tuning", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tun carousel.Tuning
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tun))
	require.NotNil(t, tun.Gesture)
	assert.InDelta(t, 0.58, tun.Gesture.CommitThreshold, 1e-9)

	// Sparse update: one field of one section.
	payload := []byte(`{"gesture":{"commit_threshold":0.7}}`)

	post := httptest.NewRequest(http.MethodPost, "/api/tuning", bytes.NewReader(payload))
	post.Header.Set("Content-Type", "application/json")
	resp, err = s.App().Test(post)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated carousel.Tuning
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.InDelta(t, 0.7, updated.Gesture.CommitThreshold, 1e-9)
	// Untouched fields and sections keep their values.
	assert.InDelta(t, 160, updated.Gesture.ThresholdPx, 1e-9)
	assert.InDelta(t, 0.3, updated.Orbit.Speed, 1e-9)
}

func TestTuningRejectsBadPayload(t *testing.T) {
	s := newTestServer(t)

	post := httptest.NewRequest(http.MethodPost, "/api/tuning", bytes.NewReader([]byte("not json")))
	post.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(post)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ws/frames", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestStaticTokenProvider(t *testing.T) {
	open := StaticTokenProvider{}
	if _, ok := open.Authorize("anything"); !ok {
		t.Error("empty token provider rejected a caller")
	}

	gated := StaticTokenProvider{Token: "secret"}
	if _, ok := gated.Authorize("wrong"); ok {
		t.Error("gated provider accepted a wrong token")
	}
	user, ok := gated.Authorize("secret")
	assert.True(t, ok)
	assert.Equal(t, "member", user)
}
