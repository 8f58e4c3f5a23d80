package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/youruser/deckbuilder/internal/cards"
	"github.com/youruser/deckbuilder/internal/deck"
	"github.com/youruser/deckbuilder/internal/session"
	"github.com/youruser/deckbuilder/internal/share"
)

// statusFor maps core errors to the status the presentation layer shows.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, deck.ErrDeckFull):
		return http.StatusConflict
	case errors.Is(err, deck.ErrEmptyCode), errors.Is(err, share.ErrEmptyCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrUnknownCard):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// deckResponse replies with the current deck view.
func (s *Server) deckResponse(c *gin.Context, status int) {
	v, err := s.session.Deck()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(status, v)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) status(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.session.Status())
}

func (s *Server) filterHandler(c *gin.Context) {
	var opt cards.Criteria
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.session.Pool(opt)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (s *Server) deckHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) addCardHandler(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.AddCard(req.ID); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) incrementHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Increment(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) decrementHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Decrement(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) removeHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Remove(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) nameHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.SetName(req.Name); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

// resetHandler is destructive and only runs with an explicit confirmation.
func (s *Server) resetHandler(c *gin.Context) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset requires {\"confirm\": true}"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Reset(); err != nil {
		fail(c, err)
		return
	}
	s.deckResponse(c, http.StatusOK)
}

func (s *Server) codeHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := s.session.Code()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

func (s *Server) importHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.session.Import(req.Code)
	if err != nil {
		fail(c, err)
		return
	}
	v, err := s.session.Deck()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"import": res, "deck": v})
}

func (s *Server) exportHandler(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, err := s.session.ExportText()
	if err != nil {
		fail(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

// qrHandler returns a PNG QR of the current deck code.
func (s *Server) qrHandler(c *gin.Context) {
	size := s.qrSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		v, err := strconv.Atoi(sizeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
		size = v
	}
	s.mu.Lock()
	code, err := s.session.Code()
	s.mu.Unlock()
	if err != nil {
		fail(c, err)
		return
	}
	b, err := share.DeckCodePNG(code, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
