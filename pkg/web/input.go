package web

import (
	"time"

	contribws "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/log"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/protocol"
)

// handleInputWS reads raw input events from the browser and feeds them to
// the engine. Every event uses the server receive time so a replayed or
// delayed client clock cannot distort gesture velocity.
func (s *Server) handleInputWS(conn *contribws.Conn) {
	user, _ := conn.Locals("user").(string)
	id := uuid.New().String()[:8]
	log.Info("input channel connected", "id", id, "user", user)

	defer func() {
		log.Info("input channel disconnected", "id", id, "user", user)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			log.Debug("unparseable input message", "error", err)
			continue
		}

		if msg.Type == protocol.TypePing {
			s.handlePing(conn, msg)
			continue
		}

		if s.dispatch(msg, time.Now()) {
			s.runner.Wake()
		}
	}
}

// dispatch routes one input message to the engine. Returns true when the
// event may have dirtied the simulation and the frame loop should wake.
func (s *Server) dispatch(msg *protocol.Message, now time.Time) bool {
	car := s.runner.Carousel()

	switch msg.Type {
	case protocol.TypePointer:
		data, err := msg.GetPointerData()
		if err != nil {
			return false
		}
		switch data.Phase {
		case protocol.PhaseDown:
			car.PointerDown(data.X, data.Y, now)
		case protocol.PhaseMove:
			car.PointerMove(data.X, data.Y, now)
		case protocol.PhaseUp:
			car.PointerUp(now)
		}
		return true

	case protocol.TypeTouch:
		data, err := msg.GetTouchData()
		if err != nil {
			return false
		}
		switch data.Phase {
		case protocol.PhaseDown:
			car.TouchStart(data.X, data.Y, now)
		case protocol.PhaseMove:
			car.TouchMove(data.X, data.Y, now)
		case protocol.PhaseUp:
			car.TouchEnd(now)
		}
		return true

	case protocol.TypeWheel:
		data, err := msg.GetWheelData()
		if err != nil {
			return false
		}
		if data.OverToken {
			car.OrbitWheel(data.DeltaY, data.X, now)
		} else {
			car.Wheel(data.DeltaY, now)
		}
		return true

	case protocol.TypeOrbit:
		data, err := msg.GetOrbitData()
		if err != nil {
			return false
		}
		switch data.Phase {
		case protocol.OrbitHoverStart:
			car.OrbitHoverStart()
		case protocol.OrbitHoverEnd:
			car.OrbitHoverEnd(now)
		case protocol.OrbitDragStart:
			car.OrbitDragStart()
		case protocol.OrbitDragMove:
			car.OrbitDrag(data.DeltaRad, now)
		case protocol.OrbitDragEnd:
			car.OrbitDragEnd(now)
		}
		return true

	case protocol.TypeViewport:
		data, err := msg.GetViewportData()
		if err != nil {
			return false
		}
		car.SetViewport(pinning.Viewport{Width: data.Width, Height: data.Height}, data.Resizing, now)
		return true

	case protocol.TypeVisibility:
		data, err := msg.GetVisibilityData()
		if err != nil {
			return false
		}
		car.SetVisibility(data.Fraction)
		return true

	case protocol.TypeMedia:
		data, err := msg.GetMediaData()
		if err != nil {
			return false
		}
		car.ReportMedia(data.CardID, data.Aspect, data.Ready)
		return true

	case protocol.TypeSetIndex:
		data, err := msg.GetSetIndexData()
		if err != nil {
			return false
		}
		return car.SetIndex(data.Index, now)

	default:
		log.Debug("unknown input message type", "type", msg.Type)
		return false
	}
}

// handlePing answers a latency probe on the input channel.
func (s *Server) handlePing(conn *contribws.Conn, msg *protocol.Message) {
	data, err := msg.GetPingData()
	if err != nil {
		return
	}
	pong, err := protocol.NewPongMessage(data.ID, msg.Timestamp, time.Now().UnixMilli())
	if err != nil {
		return
	}
	raw, err := pong.Bytes()
	if err != nil {
		return
	}
	conn.WriteMessage(contribws.TextMessage, raw)
}
