package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "mood-planner.com/mood-planner/internal/data_models"
	apperrors "mood-planner.com/mood-planner/internal/errors"
	middleware "mood-planner.com/mood-planner/internal/http/middlewares"
	"mood-planner.com/mood-planner/internal/http/validators"
	"mood-planner.com/mood-planner/internal/services"
)

type Handler struct {
	auth       *services.AuthService
	tasks      *services.TaskService
	reschedule *services.RescheduleService
	streaks    *services.StreakService
}

func NewHandler(
	auth *services.AuthService,
	tasks *services.TaskService,
	reschedule *services.RescheduleService,
	streaks *services.StreakService,
) *Handler {
	return &Handler{
		auth:       auth,
		tasks:      tasks,
		reschedule: reschedule,
		streaks:    streaks,
	}
}

// fail maps application errors onto HTTP responses. Anything that is
// not a typed Exception becomes an opaque 500.
func fail(err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	if _, err := h.auth.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered"})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	in, err := req.Input()
	if err != nil {
		return fail(err)
	}

	task, err := h.tasks.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Task created",
		"task":    task,
	})
}

func (h *Handler) ListTasks(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	tasks, totalPages, err := h.tasks.List(
		c.Request().Context(),
		middleware.UserID(c),
		page,
		c.QueryParam("mood"),
		c.QueryParam("date"),
	)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tasks":      tasks,
		"totalPages": totalPages,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}

	patch, err := req.Patch()
	if err != nil {
		return fail(err)
	}

	task, err := h.tasks.Update(c.Request().Context(), middleware.UserID(c), id, patch)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task updated",
		"task":    task,
	})
}

func (h *Handler) CompleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Complete(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task completed",
		"task":    task,
	})
}

func (h *Handler) LockTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req struct {
		Locked bool `json:"isLocked"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}

	task, err := h.tasks.SetLocked(c.Request().Context(), middleware.UserID(c), id, req.Locked)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task lock updated",
		"task":    task,
	})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted"})
}

func (h *Handler) Reschedule(c echo.Context) error {
	var req dto.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return fail(apperrors.ErrInvalidJSON)
	}
	if err := validators.ValidateRescheduleRequest(&req); err != nil {
		return err
	}

	moved, err := h.reschedule.Reschedule(c.Request().Context(), middleware.UserID(c), req.Date, req.CurrentMood)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Tasks rescheduled",
		"moved":   moved,
	})
}

func (h *Handler) CheckIn(c echo.Context) error {
	streak, already, err := h.streaks.CheckIn(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(err)
	}

	message := "Check-in recorded"
	if already {
		message = "Already checked in today"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": message,
		"streak":  streak,
	})
}

func (h *Handler) Streak(c echo.Context) error {
	streak, err := h.streaks.Streak(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"streak": streak})
}

func (h *Handler) Rank(c echo.Context) error {
	rank, err := h.streaks.Rank(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"rank": rank})
}
