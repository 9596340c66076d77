package sink

import (
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// wireUpdate is the JSON payload pushed to each connected client.
type wireUpdate struct {
	Step         int    `json:"step"`
	ResidueIndex int    `json:"residueIndex"`
	Kind         string `json:"kind"`
	Accepted     bool   `json:"accepted"`
	EnergyBefore int    `json:"energyBefore"`
	EnergyAfter  int    `json:"energyAfter"`
	BestSoFar    int    `json:"bestSoFar"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// WebSocketSink pushes every StepOutcome as JSON to connected clients
// over a buffered per-client channel, so a slow browser never blocks
// the Monte Carlo loop: OnStep only ever does a non-blocking send. No
// ping/pong liveness loop, since this is a dev-time progress viewer,
// not a long-lived production client protocol.
type WebSocketSink struct {
	listener net.Listener
	server   *http.Server

	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn    *websocket.Conn
	updates chan wireUpdate
}

// NewWebSocketSink binds addr and begins serving a single "/" websocket
// upgrade endpoint in the background. Returns an IOFailure-wrapped
// error if the listener cannot bind; rendering is an optional
// collaborator, so that failure should not abort the run, only this
// sink's construction.
func NewWebSocketSink(addr string) (*WebSocketSink, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, apperr.IO("binding websocket listener on "+addr, err)
	}

	s := &WebSocketSink{
		listener: listener,
		clients:  make(map[*client]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	s.server = &http.Server{Handler: mux}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("hpfold: websocket sink stopped: %v", err)
		}
	}()

	return s, nil
}

func (s *WebSocketSink) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, updates: make(chan wireUpdate, 32)}

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			conn.Close()
		}()
		for update := range c.updates {
			if err := conn.WriteJSON(update); err != nil {
				return
			}
		}
	}()
}

func (s *WebSocketSink) OnStep(outcome StepOutcome, _ lattice.Snapshot) {
	update := wireUpdate{
		Step:         outcome.Step,
		ResidueIndex: outcome.ResidueIndex,
		Kind:         string(outcome.Kind),
		Accepted:     outcome.Accepted,
		EnergyBefore: outcome.EnergyBefore,
		EnergyAfter:  outcome.EnergyAfter,
		BestSoFar:    outcome.BestSoFar,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.updates <- update:
		default:
			// Client is behind; drop this update rather than block the MC loop.
		}
	}
}

func (s *WebSocketSink) Close() error {
	s.mu.Lock()
	for c := range s.clients {
		close(c.updates)
	}
	s.clients = nil
	s.mu.Unlock()
	return s.server.Close()
}
