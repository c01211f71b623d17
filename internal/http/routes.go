package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "mood-planner.com/mood-planner/internal/http/middlewares"
)

// Register wires every route. /api/register and /api/login are public;
// everything else under /api requires a bearer token.
func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int, jwtSecret []byte) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	authed := api.Group("", middleware.Auth(jwtSecret))

	authed.POST("/tasks", h.CreateTask)
	authed.GET("/tasks", h.ListTasks)
	authed.GET("/tasks/:id", h.GetTask)
	authed.PATCH("/tasks/:id", h.UpdateTask)
	authed.PATCH("/tasks/:id/complete", h.CompleteTask)
	authed.PATCH("/tasks/:id/lock", h.LockTask)
	authed.DELETE("/tasks/:id", h.DeleteTask)
	authed.POST("/tasks/reschedule", h.Reschedule)

	authed.POST("/rank/checkin", h.CheckIn)
	authed.GET("/rank", h.Rank)
	authed.GET("/rank/streak", h.Streak)
}
