// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package preview serves a paving.Session over HTTP so a browser can watch
// the texture change while parameters are edited.
//
// Routes:
//
//	GET /texture.png  current canvas, X-Canvas-Version header
//	GET /binding      current texture binding as JSON
//	GET /healthz      liveness probe
//	GET /ws           websocket: frames out, parameter updates in
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/paving"
	"github.com/gogpu/paving/internal/cache"
)

const (
	writeWait    = 2 * time.Second
	maxMessage   = 64 << 10
	shutdownWait = 5 * time.Second
	cachedFrames = 4
)

// VersionHeader carries the canvas version of a /texture.png response.
const VersionHeader = "X-Canvas-Version"

// client is one websocket connection. gorilla connections allow a single
// concurrent writer, so writes go through mu.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Server exposes a session to preview clients.
type Server struct {
	session  *paving.Session
	upgrader websocket.Upgrader
	frames   *cache.Cache[uint64, encodedFrame]

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a Server for s.
func NewServer(s *paving.Session) *Server {
	return &Server{
		session: s,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		frames:  cache.New[uint64, encodedFrame](cachedFrames),
		clients: map[*client]struct{}{},
	}
}

// Handler returns the HTTP routes of the preview.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /texture.png", s.handleTexture)
	mux.HandleFunc("GET /binding", s.handleBinding)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWS)
	return withCORS(mux)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully and disconnects websocket clients.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		paving.Logger().Info("preview: listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	paving.Logger().Info("preview: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close disconnects every websocket client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		_ = c.conn.Close()
		delete(s.clients, c)
	}
}

// Broadcast sends the current canvas to every connected client.
func (s *Server) Broadcast() error {
	msg, err := s.frameMessage()
	if err != nil {
		return err
	}
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.write(msg); err != nil {
			paving.Logger().Debug("preview: write frame", "remote", c.conn.RemoteAddr(), "error", err)
		}
	}
	return nil
}

func (s *Server) handleTexture(w http.ResponseWriter, _ *http.Request) {
	f, err := s.frame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(VersionHeader, strconv.FormatUint(f.version, 10))
	_, _ = w.Write(f.png)
}

func (s *Server) handleBinding(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(bindingOf(s.session.Binding()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.SetReadLimit(maxMessage)
	c := &client{conn: conn}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log := paving.Logger().With("remote", conn.RemoteAddr())
	log.Debug("preview: client connected")

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		_ = conn.Close()
		log.Debug("preview: client disconnected")
	}()

	if msg, err := s.frameMessage(); err == nil {
		if err := c.write(msg); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := s.apply(data, log); err != nil {
			if werr := c.write(errorOf(err)); werr != nil {
				return
			}
		}
	}
}

// apply handles one client message.
func (s *Server) apply(data []byte, log *slog.Logger) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	if msg.Type != TypeParams {
		return fmt.Errorf("unknown message type %q", msg.Type)
	}

	p := s.session.Parameters()
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return fmt.Errorf("malformed params: %w", err)
		}
	}

	updated, err := s.session.Update(p.Clamp())
	if err != nil {
		return err
	}
	if !updated {
		log.Debug("preview: parameters stored, no images loaded")
		return nil
	}
	return s.Broadcast()
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
