// Package admin serves the tuioctl HTTP inspection surface: health, metrics,
// committed registry snapshots and the websocket event stream.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/tuioctl/internal/observability"
	"github.com/danmuck/tuioctl/internal/stream"
	"github.com/danmuck/tuioctl/internal/tuio"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Registry is the client surface the admin routes read from.
type Registry interface {
	Cursors() []tuio.Cursor
	Objects() []tuio.Object
	Blobs() []tuio.Blob
	Cursor(sessionID int64) (tuio.Cursor, bool)
	Object(sessionID int64) (tuio.Object, bool)
	Blob(sessionID int64) (tuio.Blob, bool)
	IsConnected() bool
	ProfileFiltering() bool
	SetProfileFiltering(enabled bool)
	CursorsFiltered() bool
}

var _ Registry = (*tuio.Client)(nil)

// Server is the admin HTTP surface for one tuio client.
type Server struct {
	ID       string
	Addr     string
	Appeared time.Time

	client Registry
	hub    *stream.Hub
	router *gin.Engine
}

// New builds the router with logging, metrics and CORS middleware. hub may be
// nil, in which case /stream is not registered.
func New(id, addr string, corsOrigins []string, client Registry, hub *stream.Hub) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(id))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		ID:       id,
		Addr:     addr,
		Appeared: time.Now(),
		client:   client,
		hub:      hub,
		router:   r,
	}
	s.RegisterRoutes()
	return s
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		status := http.StatusOK
		if !s.client.IsConnected() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ready":   status == http.StatusOK,
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/status", func(c *gin.Context) {
		body := gin.H{
			"connected":         s.client.IsConnected(),
			"profile_filtering": s.client.ProfileFiltering(),
			"cursors_filtered":  s.client.CursorsFiltered(),
			"cursors":           len(s.client.Cursors()),
			"objects":           len(s.client.Objects()),
			"blobs":             len(s.client.Blobs()),
		}
		if s.hub != nil {
			body["stream_clients"] = s.hub.Clients()
		}
		c.JSON(http.StatusOK, body)
	})

	r.POST("/filtering", func(c *gin.Context) {
		var req struct {
			Enabled *bool `json:"enabled"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"enabled\": bool}"})
			return
		}
		s.client.SetProfileFiltering(*req.Enabled)
		log.Info().Bool("enabled", *req.Enabled).Msg("admin.Server profile filtering changed")
		c.JSON(http.StatusOK, gin.H{"profile_filtering": *req.Enabled})
	})

	r.GET("/cursors", func(c *gin.Context) {
		list := s.client.Cursors()
		c.JSON(http.StatusOK, gin.H{"count": len(list), "cursors": list})
	})
	r.GET("/cursors/:session", func(c *gin.Context) {
		lookup(c, s.client.Cursor)
	})

	r.GET("/objects", func(c *gin.Context) {
		list := s.client.Objects()
		c.JSON(http.StatusOK, gin.H{"count": len(list), "objects": list})
	})
	r.GET("/objects/:session", func(c *gin.Context) {
		lookup(c, s.client.Object)
	})

	r.GET("/blobs", func(c *gin.Context) {
		list := s.client.Blobs()
		c.JSON(http.StatusOK, gin.H{"count": len(list), "blobs": list})
	})
	r.GET("/blobs/:session", func(c *gin.Context) {
		lookup(c, s.client.Blob)
	})

	if s.hub != nil {
		r.GET("/stream", gin.WrapH(s.hub))
	}
}

func lookup[E any](c *gin.Context, get func(int64) (E, bool)) {
	sid, err := strconv.ParseInt(c.Param("session"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session must be an integer"})
		return
	}
	e, ok := get(sid)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// Serve listens on Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.Addr).Msg("admin.Server.Serve listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.hub != nil {
		s.hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
