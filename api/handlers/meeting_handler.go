package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
)

// CreateMeeting creates a meeting and links the listed tasks.
func (h *Handler) CreateMeeting(c *gin.Context) {
	var req schema.CreateMeetingRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	meeting, err := h.repos.Meetings.Create(c.Request.Context(), req.Meeting(), req.Tasks)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schema.FromMeeting(meeting))
}

// ListMeetings lists every meeting ordered by start time.
func (h *Handler) ListMeetings(c *gin.Context) {
	meetings, err := h.repos.Meetings.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromMeetings(meetings))
}

// GetMeeting returns one meeting with its tasks expanded.
func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	meeting, err := h.repos.Meetings.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromMeeting(meeting))
}

// LinkTasks replaces the meeting's task set with task_ids.
func (h *Handler) LinkTasks(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req schema.LinkTasksRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	meeting, err := h.repos.Meetings.LinkTasks(c.Request.Context(), id, req.TaskIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromMeeting(meeting))
}
