package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/log"
)

// handleStatus reports the engine's live state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	car := s.runner.Carousel()
	snap := car.Snapshot()

	return c.JSON(fiber.Map{
		"status":       "ok",
		"active_index": snap.State.ActiveIndex,
		"phase":        snap.State.Phase.String(),
		"disabled":     snap.Disabled,
		"pin":          snap.Pin,
		"cards":        car.Deck().Len(),
		"viewers":      s.frameHub.ClientCount(),
	})
}

// handleDeck returns the card sequence so the frontend can render titles
// and media sources. Transforms arrive separately on the frame stream.
func (s *Server) handleDeck(c *fiber.Ctx) error {
	car := s.runner.Carousel()
	return c.JSON(fiber.Map{
		"cards": car.Deck().Cards(),
		"theme": car.Theme(),
	})
}

// handleGetTuning returns the live parameter sets.
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.runner.Carousel().GetTuning())
}

// handleSetTuning applies parameter overrides. Omitted sections are left
// untouched, so a client can adjust one subsystem at a time.
func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	// Overlay the payload on the live values so a sparse body only touches
	// the fields it names.
	t := s.runner.Carousel().GetTuning()
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tuning payload: " + err.Error(),
		})
	}

	s.runner.Carousel().SetTuning(t)
	s.runner.Wake()
	log.Info("tuning updated",
		"gesture", t.Gesture != nil,
		"pinning", t.Pinning != nil,
		"media", t.Media != nil,
		"orbit", t.Orbit != nil,
		"layout", t.Layout != nil)

	return c.JSON(s.runner.Carousel().GetTuning())
}
