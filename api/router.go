package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/handlers"
)

// NewRouter wires every endpoint. Everything except /ping, /login and
// /signup requires a session.
func NewRouter(h *handlers.Handler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)

	gated := r.Group("/", h.RequireSession())
	{
		gated.POST("/logout", h.Logout)

		// Project routes
		gated.POST("/projects/create", h.CreateProject)
		gated.GET("/projects/:id", h.ListProjects)
		gated.DELETE("/projects/:id", h.DeleteProject)
		gated.GET("/projects/:id/tasks", h.ListProjectTasks)
		gated.POST("/projects/:id/add_task", h.AddTask)

		// Task routes
		gated.GET("/tasks/:id", h.ListUserTasks)
		gated.GET("/tasks/details/:id", h.GetTask)
		gated.POST("/tasks/:id/edit", h.EditTask)
		gated.DELETE("/tasks/:id", h.DeleteTask)
		gated.GET("/tasks/:id/meetings", h.ListTaskMeetings)

		// Meeting routes
		gated.POST("/meetings/create", h.CreateMeeting)
		gated.GET("/meetings", h.ListMeetings)
		gated.GET("/meetings/:id", h.GetMeeting)
		gated.POST("/meetings/:id/add_task", h.LinkTasks)
		gated.GET("/meetings/:id/note", h.GetNote)
		gated.POST("/meetings/:id/note/edit", h.EditNote)
	}

	return r
}
