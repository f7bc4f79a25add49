// Package remote is an optional debug server that streams a running
// machine's framebuffer over a websocket as raw RGBA, so a browser-based
// viewer (or a test harness) can observe the emulator without linking
// SDL2.
package remote

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pixelfault/dmgboy/pkg/palette"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server fans out RGBA frames to every connected websocket client.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte

	palette palette.Palette
	log     *logrus.Logger
}

// NewServer returns a Server that resolves each published 2-bit
// framebuffer through pal before sending it to clients.
func NewServer(pal palette.Palette, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{clients: make(map[*websocket.Conn]chan []byte), palette: pal, log: log}
}

// Handler returns the http.Handler that upgrades incoming connections
// and registers them to receive subsequent Publish calls.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.WithError(err).Debug("remote: upgrade failed")
			return
		}
		send := make(chan []byte, 2)

		s.mu.Lock()
		s.clients[conn] = send
		s.mu.Unlock()

		go s.writePump(conn, send)
		s.readPump(conn, send)
	})
}

// ListenAndServe starts an HTTP server on addr with Handler mounted at
// "/". It blocks until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler())
	s.log.Infof("remote: serving framebuffer stream on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// Publish resolves frame (the PPU's 2-bit-per-pixel buffer) through the
// server's palette and sends the RGBA bytes to every connected client.
// Slow clients are dropped rather than allowed to back up the caller.
func (s *Server) Publish(frame []uint8) {
	rgba := s.palette.ResolveRGBA(frame)

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, send := range s.clients {
		select {
		case send <- rgba:
		default:
			s.log.Debug("remote: dropping frame for slow client")
			delete(s.clients, conn)
			close(send)
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, send <-chan []byte) {
	defer conn.Close()
	for frame := range send {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return
		}
	}
}

func (s *Server) readPump(conn *websocket.Conn, send chan []byte) {
	defer func() {
		s.mu.Lock()
		if _, ok := s.clients[conn]; ok {
			delete(s.clients, conn)
			close(send)
		}
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
