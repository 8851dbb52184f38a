package call

import (
	"errors"
	"net/http"

	"dialdish/internal/transcript"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Call connected: open a session
// --------------------------------------------------
func (h *Handler) Connected(c *gin.Context) {
	callID := c.Param("id")
	if callID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "call id is required"})
		return
	}

	sess := h.service.Connected(callID)
	c.JSON(http.StatusOK, gin.H{
		"call_id":    callID,
		"session_id": sess.ID,
	})
}

// --------------------------------------------------
// Utterance: one speaker-tagged transcript turn
// --------------------------------------------------
func (h *Handler) Utterance(c *gin.Context) {
	var req struct {
		Speaker transcript.Speaker `json:"speaker"`
		Text    string             `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !req.Speaker.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "speaker must be 'customer' or 'agent'"})
		return
	}

	if err := h.service.Utterance(c.Param("id"), req.Speaker, req.Text); err != nil {
		if errors.Is(err, ErrUnknownCall) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// --------------------------------------------------
// Call disconnected: assemble + submit once
// --------------------------------------------------
func (h *Handler) Disconnected(c *gin.Context) {
	result, err := h.service.Disconnected(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUnknownCall) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Always 200: submission failure is an operational concern, the
	// telephony side only needs to know teardown can proceed.
	resp := gin.H{"submitted": result.Submitted}
	if result.Reason != "" {
		resp["reason"] = result.Reason
	}
	if result.Order != nil {
		resp["order"] = result.Order
	}
	c.JSON(http.StatusOK, resp)
}
