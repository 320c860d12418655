package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
)

// GetNote returns the meeting's note, creating an empty one on first access.
func (h *Handler) GetNote(c *gin.Context) {
	meetingID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	note, err := h.repos.Notes.GetOrCreate(c.Request.Context(), meetingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromNote(note))
}

// EditNote overwrites the meeting note's content.
func (h *Handler) EditNote(c *gin.Context) {
	meetingID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req schema.EditNoteRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	note, err := h.repos.Notes.Update(c.Request.Context(), meetingID, *req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromNote(note))
}
