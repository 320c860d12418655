package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
)

// CreateProject creates a new project, or returns the owner's identical one.
func (h *Handler) CreateProject(c *gin.Context) {
	var req schema.CreateProjectRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	project, created, err := h.repos.Projects.Create(c.Request.Context(), req.UserID, strings.TrimSpace(req.Title), req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status, message := http.StatusCreated, "Project created successfully"
	if !created {
		status, message = http.StatusOK, "Project already exists"
	}
	c.JSON(status, gin.H{"message": message, "project": schema.FromProject(project)})
}

// ListProjects lists the projects owned by the user in the path.
func (h *Handler) ListProjects(c *gin.Context) {
	userID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	projects, err := h.repos.Projects.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_list": schema.FromProjects(projects)})
}

// ListProjectTasks lists the tasks of one project.
func (h *Handler) ListProjectTasks(c *gin.Context) {
	projectID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	tasks, err := h.repos.Tasks.ListForProject(c.Request.Context(), projectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_list": schema.FromTasks(tasks)})
}

// DeleteProject deletes a project together with its tasks.
func (h *Handler) DeleteProject(c *gin.Context) {
	projectID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.repos.Projects.Delete(c.Request.Context(), projectID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// AddTask upserts a task under the project by title.
func (h *Handler) AddTask(c *gin.Context) {
	projectID, err := paramID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req schema.AddTaskRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	task, created, err := h.repos.Tasks.Upsert(c.Request.Context(), projectID, strings.TrimSpace(req.Title), req.Fields())
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"task": schema.FromTask(task), "created": created})
}
