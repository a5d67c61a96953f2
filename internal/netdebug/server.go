// Package netdebug broadcasts a running nupy program's statement
// boundaries, print output, and first error as JSON frames over a
// websocket, so an external tool can watch a program execute live.
// Grounded on
// internal/network/websocket_server.go's Upgrader/Clients/broadcast
// pattern, narrowed to one server with no per-connection send/receive
// API: nupy runs one program at a time and only ever pushes frames
// outward, so the client registry, NewClients channel, and
// ConnectionHandler callbacks that file carried for arbitrary
// bidirectional sessions have no job here.
package netdebug

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nupy/internal/parser"
)

// Frame is one JSON message broadcast to every connected client.
type Frame struct {
	Kind string    `json:"kind"` // "statement", "print", or "error"
	Time time.Time `json:"time"`
	Line int       `json:"line,omitempty"`
	Text string    `json:"text,omitempty"`
}

// Server upgrades incoming HTTP connections to websockets and
// broadcasts Frames to all of them. It implements evaluator.Hook.
type Server struct {
	upgrader websocket.Upgrader
	http     *http.Server

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// Listen starts a debug server at addr (e.g. "localhost:9797") and
// returns it running in the background. Call Close when the program
// finishes.
func Listen(addr string) (*Server, error) {
	s := &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  make(map[*websocket.Conn]struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	s.http = &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	go s.http.Serve(ln)
	return s, nil
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) broadcast(f Frame) {
	body, err := json.Marshal(f)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Statement implements evaluator.Hook.
func (s *Server) Statement(stmt *parser.Stmt) {
	s.broadcast(Frame{Kind: "statement", Time: timeNow(), Line: stmt.Line})
}

// Printed implements evaluator.Hook.
func (s *Server) Printed(line string) {
	s.broadcast(Frame{Kind: "print", Time: timeNow(), Text: line})
}

// Failed implements evaluator.Hook.
func (s *Server) Failed(err error) {
	s.broadcast(Frame{Kind: "error", Time: timeNow(), Text: err.Error()})
}

// Close shuts down the HTTP server and closes every connected client.
func (s *Server) Close() error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()
	return s.http.Close()
}

func timeNow() time.Time { return time.Now() }
