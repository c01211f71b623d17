package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "mood-planner.com/mood-planner/internal/data_models"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if r.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	return nil
}

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task is required")
	}
	if len(r.Moods) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "mood is required")
	}
	if r.Timestamp == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "timestamp is required")
	}
	if r.Length < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "length must be positive")
	}
	return nil
}

func ValidateRescheduleRequest(r *dto.RescheduleRequest) error {
	if r.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	if r.CurrentMood == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "currentMood is required")
	}
	return nil
}
