package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weft-labs/sigscout-cli/internal/core/domain"
)

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// listSignals returns all signals, optionally filtered by exact tag
// via ?tag=.
func (s *Server) listSignals(c *gin.Context) {
	var (
		signals []domain.Signal
		err     error
	)
	if tag := c.Query("tag"); tag != "" {
		signals, err = s.ports.Signals.FilterByTag(c.Request.Context(), tag)
	} else {
		signals, err = s.ports.Signals.List(c.Request.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}
	if signals == nil {
		signals = []domain.Signal{}
	}
	c.JSON(http.StatusOK, signals)
}

func (s *Server) createSignal(c *gin.Context) {
	var draft domain.SignalDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	signal, err := s.ports.Signals.Create(c.Request.Context(), draft)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, signal)
}

// searchSignals matches ?q= against title, context and rationale.
func (s *Server) searchSignals(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	signals, err := s.ports.Signals.Search(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	if signals == nil {
		signals = []domain.Signal{}
	}
	c.JSON(http.StatusOK, signals)
}

func (s *Server) getSignal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	signal, err := s.ports.Signals.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, signal)
}

func (s *Server) updateSignal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var draft domain.SignalDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	signal, err := s.ports.Signals.Update(c.Request.Context(), id, draft)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, signal)
}

func (s *Server) deleteSignal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := s.ports.Signals.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.ports.Signals.Tags(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, tags)
}
