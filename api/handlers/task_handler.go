package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
)

// ListUserTasks lists the tasks across every project of the user in the path.
// An unknown user has no tasks.
func (h *Handler) ListUserTasks(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tasks, err := h.repos.Tasks.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_list": schema.FromTasks(tasks)})
}

// GetTask retrieves a single task by its ID.
func (h *Handler) GetTask(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	task, err := h.repos.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromTask(task))
}

// EditTask updates an existing task.
func (h *Handler) EditTask(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req schema.EditTaskRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}

	task, err := h.repos.Tasks.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": schema.FromTask(task)})
}

// DeleteTask deletes a task; the meetings it was linked to survive.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repos.Tasks.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ListTaskMeetings lists the meetings a task is linked to, earliest first.
func (h *Handler) ListTaskMeetings(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	meetings, err := h.repos.Meetings.ListForTask(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema.FromMeetings(meetings))
}
