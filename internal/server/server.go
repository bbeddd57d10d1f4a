// Package server hosts the embedded browser surface over HTTP: it serves
// the current map document, carries the string message channel on a
// WebSocket, and pushes a reload control frame to connected browsers
// whenever a new document is loaded.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one connected browser. Outbound frames are serialized through
// the send channel; a full buffer drops the frame rather than blocking.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Server implements view.Surface: LoadDocument swaps the served document
// and tells connected browsers to reload.
type Server struct {
	cfg        Config
	router     chi.Router
	httpServer *http.Server

	mu       sync.RWMutex
	document string
	clients  map[string]*client
	handler  func([]byte)
}

// New creates a server with no document loaded.
func New(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		clients: make(map[string]*client),
	}
	s.router = s.buildRouter()
	return s
}

// OnMessage registers the receiver for inbound text frames from the
// embedded content. Must be called before Start.
func (s *Server) OnMessage(fn func([]byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = fn
}

// Router returns the chi router, exposed for tests.
func (s *Server) Router() chi.Router { return s.router }

// URL returns the address browsers should open.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.Port)
}

// BridgeURL returns the WebSocket endpoint the generated document connects
// back to.
func (s *Server) BridgeURL() string {
	return fmt.Sprintf("ws://localhost:%d/ws", s.cfg.Port)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleDocument)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// handleDocument serves the current document.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	doc := s.document
	s.mu.RUnlock()

	if doc == "" {
		http.Error(w, "no document loaded", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(doc))
}

// handleWebSocket upgrades the connection and runs the message channel for
// one browser: inbound text frames go to the registered handler, outbound
// frames come from the client's send channel.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 16),
	}

	s.mu.Lock()
	s.clients[c.id] = c
	handler := s.handler
	s.mu.Unlock()

	log.Printf("server: session %s connected", c.id)

	go c.writer()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		close(c.send)
		conn.Close()
		log.Printf("server: session %s disconnected", c.id)
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: session %s read: %v", c.id, err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if handler != nil {
			handler(data)
		}
	}
}

// writer drains the send channel onto the connection.
func (c *client) writer() {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("server: session %s write: %v", c.id, err)
			return
		}
	}
}

// broadcast queues a frame for every connected browser, dropping it for
// clients whose buffer is full.
func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// LoadDocument implements view.Surface. Connected browsers are told to
// reload so they fetch the new document; browsers that connect later get it
// from the document route directly.
func (s *Server) LoadDocument(html string) error {
	s.mu.Lock()
	s.document = html
	s.mu.Unlock()

	s.broadcast([]byte(`{"type":"reload"}`))
	return nil
}

// Start begins listening on the configured port. It blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
