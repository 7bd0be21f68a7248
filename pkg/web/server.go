// Package web serves the carousel engine to its rendering surface: static
// frontend assets, a status/tuning API, a websocket input channel and a
// websocket frame stream.
package web

import (
	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberws "github.com/gofiber/websocket/v2"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/log"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/carousel"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/hub"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/protocol"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/signal"
)

// SessionProvider gates whether the engine renders for a caller. It is a
// narrow interface over whatever identity system the surrounding
// application uses; the engine never sees more than an opaque user id.
type SessionProvider interface {
	Authorize(token string) (user string, ok bool)
}

// StaticTokenProvider authorizes a single shared token. An empty token
// allows everyone (development mode).
type StaticTokenProvider struct {
	Token string
}

// Authorize implements SessionProvider.
func (p StaticTokenProvider) Authorize(token string) (string, bool) {
	if p.Token == "" {
		return "dev", true
	}
	if token == p.Token {
		return "member", true
	}
	return "", false
}

// Server is the engine's web surface.
type Server struct {
	app  *fiber.App
	port string

	runner   *carousel.Runner
	sessions SessionProvider

	// frameHub broadcasts the render stream to viewers
	frameHub *hub.Hub
}

// NewServer wires a carousel runner to the web surface.
func NewServer(port, staticDir string, runner *carousel.Runner, sessions SessionProvider) *Server {
	s := &Server{
		port:     port,
		runner:   runner,
		sessions: sessions,
		frameHub: hub.New("frames"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "ArtisTalks Carousel Engine",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static frontend
	app.Static("/", staticDir)

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/deck", s.handleDeck)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)

	// WebSocket upgrade middleware with the session gate
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !fiberws.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		user, ok := s.sessions.Authorize(c.Query("token"))
		if !ok {
			return fiber.ErrUnauthorized
		}
		c.Locals("user", user)
		return c.Next()
	})

	app.Get("/ws/frames", fiberws.New(s.handleFramesWS))
	app.Get("/ws/input", contribws.New(s.handleInputWS))

	s.app = app
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the hub and listens. Blocks.
func (s *Server) Start() error {
	go s.frameHub.Run()
	go s.forwardSignals()

	log.Info("engine web surface listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// BroadcastSnapshot pushes one rendered frame to all viewers. This is the
// runner's frame sink.
func (s *Server) BroadcastSnapshot(snap carousel.Snapshot) {
	msg, err := protocol.NewMessage(protocol.TypeFrame, snap)
	if err != nil {
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		return
	}
	s.frameHub.Broadcast(hub.NewMessage(raw))
}

// forwardSignals relays engine broadcasts (pinned/stable/rejected) onto
// the frame stream so viewers see them as discrete messages too.
func (s *Server) forwardSignals() {
	ch := make(chan signal.Signal, 64)
	if err := s.runner.Carousel().Bus().Subscribe("web", ch); err != nil {
		log.Error("signal subscribe failed", "error", err)
		return
	}

	for sig := range ch {
		var (
			msg *protocol.Message
			err error
		)
		switch v := sig.(type) {
		case signal.Pinned:
			msg, err = protocol.NewPinnedMessage(v.Width, v.Height)
		case signal.Stable:
			msg, err = protocol.NewStableMessage(v.Index)
		case signal.Rejected:
			msg, err = protocol.NewRejectedMessage()
		default:
			continue
		}
		if err != nil {
			continue
		}
		raw, err := msg.Bytes()
		if err != nil {
			continue
		}
		s.frameHub.Broadcast(hub.NewMessage(raw))
	}
}

// handleFramesWS subscribes a viewer to the render stream.
func (s *Server) handleFramesWS(conn *fiberws.Conn) {
	client := hub.NewClient(s.frameHub, conn)
	client.Run()
}
