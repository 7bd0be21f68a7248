// gesture-replay drives a running engine with a scripted input sequence
// and prints the stability broadcasts it produces. Useful for tuning
// commit thresholds against recorded swipes without a browser.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"gopkg.in/yaml.v3"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/httpc"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/protocol"
)

// scriptEvent is one line of a replay script. DelayMs is the pause before
// the event is sent, reproducing the recorded timing.
type scriptEvent struct {
	DelayMs int     `yaml:"delay_ms"`
	Kind    string  `yaml:"kind"` // down, move, up, wheel, visibility, viewport, set_index
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	DeltaY  float64 `yaml:"delta_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Value   float64 `yaml:"value"` // visibility fraction or target index
}

type script struct {
	Name   string        `yaml:"name"`
	Events []scriptEvent `yaml:"events"`
}

func main() {
	host := flag.String("host", "localhost:8090", "Engine host:port")
	token := flag.String("token", "", "Session token")
	scriptPath := flag.String("script", "", "Replay script YAML (required)")
	watchMs := flag.Int("watch", 1500, "How long to watch for broadcasts after the script ends (ms)")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gesture-replay -script swipe.yaml [-host localhost:8090]")
		os.Exit(1)
	}

	sc, err := loadScript(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "script: %v\n", err)
		os.Exit(1)
	}

	if err := printStatus(*host); err != nil {
		fmt.Fprintf(os.Stderr, "engine unreachable at %s: %v\n", *host, err)
		os.Exit(1)
	}

	frames, err := dial(*host, "/ws/frames", *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "frames: %v\n", err)
		os.Exit(1)
	}
	defer frames.Close()

	input, err := dial(*host, "/ws/input", *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "input: %v\n", err)
		os.Exit(1)
	}
	defer input.Close()

	done := make(chan struct{})
	go watchBroadcasts(frames, done)

	fmt.Printf("replaying %q (%d events)\n", sc.Name, len(sc.Events))
	for _, ev := range sc.Events {
		if ev.DelayMs > 0 {
			time.Sleep(time.Duration(ev.DelayMs) * time.Millisecond)
		}
		msg, err := buildMessage(ev)
		if err != nil {
			fmt.Fprintf(os.Stderr, "event %q: %v\n", ev.Kind, err)
			os.Exit(1)
		}
		raw, err := msg.Bytes()
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		if err := input.WriteMessage(websocket.TextMessage, raw); err != nil {
			fmt.Fprintf(os.Stderr, "send: %v\n", err)
			os.Exit(1)
		}
	}

	select {
	case <-done:
	case <-time.After(time.Duration(*watchMs) * time.Millisecond):
	}
}

func loadScript(path string) (*script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc script
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	if len(sc.Events) == 0 {
		return nil, fmt.Errorf("script has no events")
	}
	return &sc, nil
}

func buildMessage(ev scriptEvent) (*protocol.Message, error) {
	switch ev.Kind {
	case "down":
		return protocol.NewPointerMessage(protocol.PhaseDown, ev.X, ev.Y)
	case "move":
		return protocol.NewPointerMessage(protocol.PhaseMove, ev.X, ev.Y)
	case "up":
		return protocol.NewPointerMessage(protocol.PhaseUp, ev.X, ev.Y)
	case "wheel":
		return protocol.NewWheelMessage(ev.DeltaY, ev.X, false)
	case "visibility":
		return protocol.NewVisibilityMessage(ev.Value)
	case "viewport":
		return protocol.NewViewportMessage(ev.Width, ev.Height, false)
	case "set_index":
		return protocol.NewSetIndexMessage(int(ev.Value))
	default:
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

// watchBroadcasts prints stability and rejection broadcasts from the frame
// stream, skipping the per-frame transform messages.
func watchBroadcasts(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			continue
		}
		switch msg.Type {
		case protocol.TypeStable:
			data, err := msg.GetStableData()
			if err != nil {
				continue
			}
			fmt.Printf("stable: index=%d\n", data.Index)
		case protocol.TypePinned:
			var data protocol.PinnedData
			if msg.ParseData(&data) == nil {
				fmt.Printf("pinned: %.0fx%.0f\n", data.Width, data.Height)
			}
		case protocol.TypeRejected:
			fmt.Println("rejected")
		}
	}
}

func dial(host, path, token string) (*websocket.Conn, error) {
	url := "ws://" + host + path
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	return conn, err
}

func printStatus(host string) error {
	resp, err := httpc.Get("http://" + host + "/api/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var status map[string]interface{}
	if err := json.Unmarshal(raw, &status); err != nil {
		return err
	}
	fmt.Printf("engine: cards=%v phase=%v active=%v\n",
		status["cards"], status["phase"], status["active_index"])
	return nil
}
