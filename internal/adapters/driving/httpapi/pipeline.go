package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

// listItems returns pending candidates, optionally restricted by
// ?source=.
func (s *Server) listItems(c *gin.Context) {
	var (
		items []domain.PipelineItem
		err   error
	)
	if source := c.Query("source"); source != "" {
		items, err = s.ports.Pipeline.ItemsBySource(c.Request.Context(), source)
	} else {
		items, err = s.ports.Pipeline.Items(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	if items == nil {
		items = []domain.PipelineItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) approveItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var draft domain.SignalDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	signal, err := s.ports.Pipeline.Approve(c.Request.Context(), id, draft)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, signal)
}

func (s *Server) discardItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.ports.Pipeline.Discard(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) fetchNow(c *gin.Context) {
	summary, err := s.ports.Pipeline.FetchNow(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) getConfig(c *gin.Context) {
	cfg, err := s.ports.Pipeline.Config(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// putConfig replaces the configuration and reschedules the recurring
// jobs.
func (s *Server) putConfig(c *gin.Context) {
	var cfg domain.PipelineConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.ports.Pipeline.SaveConfig(c.Request.Context(), cfg); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) listRuns(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	runs, err := s.ports.Pipeline.Runs(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	if runs == nil {
		runs = []domain.FetchRun{}
	}
	c.JSON(http.StatusOK, runs)
}

// streamEvents pushes pipeline update notifications as server-sent
// events until the client disconnects.
func (s *Server) streamEvents(c *gin.Context) {
	if s.ports.Events == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event stream not available"})
		return
	}

	events, unsubscribe := s.ports.Events.Subscribe()
	defer unsubscribe()

	c.Stream(func(io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("pipeline_items_updated", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
