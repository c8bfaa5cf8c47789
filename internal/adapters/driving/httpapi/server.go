// Package httpapi exposes the core services as a JSON HTTP API for
// the UI layer, including a server-sent events stream for pipeline
// updates.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weft-labs/sigscout-cli/internal/adapters/driven/notify"
	"github.com/weft-labs/sigscout-cli/internal/core/domain"
	"github.com/weft-labs/sigscout-cli/internal/core/ports/driving"
	"github.com/weft-labs/sigscout-cli/internal/logger"
)

// Ports bundles the driving ports the API serves.
type Ports struct {
	Signals  driving.SignalService
	Pipeline driving.PipelineService
	Events   *notify.Hub
}

// Server is the HTTP API server.
type Server struct {
	ports  *Ports
	engine *gin.Engine
}

// NewServer creates the API server and registers all routes.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil || ports.Signals == nil || ports.Pipeline == nil {
		return nil, errors.New("httpapi: missing services")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{ports: ports, engine: engine}
	s.registerRoutes()
	return s, nil
}

// Handler returns the http.Handler for the API. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown: %v", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.GET("/signals", s.listSignals)
	api.POST("/signals", s.createSignal)
	api.GET("/signals/search", s.searchSignals)
	api.GET("/signals/:id", s.getSignal)
	api.PUT("/signals/:id", s.updateSignal)
	api.DELETE("/signals/:id", s.deleteSignal)
	api.GET("/tags", s.listTags)

	api.GET("/pipeline/items", s.listItems)
	api.POST("/pipeline/items/:id/approve", s.approveItem)
	api.DELETE("/pipeline/items/:id", s.discardItem)
	api.POST("/pipeline/fetch", s.fetchNow)
	api.GET("/pipeline/config", s.getConfig)
	api.PUT("/pipeline/config", s.putConfig)
	api.GET("/pipeline/runs", s.listRuns)

	api.GET("/events", s.streamEvents)
}

// fail maps domain errors onto HTTP status codes.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
