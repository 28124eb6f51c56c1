package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/client"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/schedule"
)

type ScheduleHandler struct {
	scheduleService *schedule.Service
}

func NewScheduleHandler(scheduleService *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// HandleComputeSchedule builds the full day schedule for a user. The
// target date defaults to the observation instant's calendar date.
func (h *ScheduleHandler) HandleComputeSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID is required")
		return
	}

	now, ok := parseNow(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, now)
	if !ok {
		return
	}

	daySchedule, err := h.scheduleService.ComputeDaySchedule(ctx, userID, date, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, daySchedule)
}

func (h *ScheduleHandler) HandleOverdue(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID is required")
		return
	}

	now, ok := parseNow(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, now)
	if !ok {
		return
	}

	result, err := h.scheduleService.Overdue(ctx, userID, date, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) HandleUpcoming(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID is required")
		return
	}

	now, ok := parseNow(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, now)
	if !ok {
		return
	}

	windowHours := 0
	if withinStr := c.Query("within_hours"); withinStr != "" {
		parsed, err := strconv.Atoi(withinStr)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "within_hours must be a positive integer")
			return
		}
		windowHours = parsed
	}

	result, err := h.scheduleService.Upcoming(ctx, userID, date, now, windowHours)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) HandleMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID is required")
		return
	}

	now, ok := parseNow(c)
	if !ok {
		return
	}

	date, ok := parseDate(c, now)
	if !ok {
		return
	}

	summary, err := h.scheduleService.Metrics(ctx, userID, date, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HandleNextDose reports the earliest future occurrence for one medication
// strictly after the from instant.
func (h *ScheduleHandler) HandleNextDose(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	medicationID := c.Param("medicationID")
	if userID == "" || medicationID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID and medicationID are required")
		return
	}

	from := time.Now().UTC()
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid from time format, expected RFC3339")
			return
		}
		from = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_from", from),
		)
	}

	result, err := h.scheduleService.NextDose(ctx, userID, medicationID, from)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// parseNow resolves the observation instant, honoring the virtual-time
// query parameter. A false return means the response was already written.
func parseNow(c *gin.Context) (time.Time, bool) {
	nowStr := c.Query("now")
	if nowStr == "" {
		return time.Now().UTC(), true
	}

	parsed, err := time.Parse(time.RFC3339, nowStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid now time format, expected RFC3339")
		return time.Time{}, false
	}

	slog.InfoContext(c.Request.Context(), "using virtual time",
		slog.Time("virtual_now", parsed),
	)

	return parsed, true
}

// parseDate resolves the target calendar date, defaulting to now's date.
func parseDate(c *gin.Context, now time.Time) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return now, true
	}

	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid date format, expected YYYY-MM-DD")
		return time.Time{}, false
	}

	return parsed, true
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}

// respondServiceError maps service failures onto HTTP statuses: unknown
// doses are 404, medications the store accepted but the schedule engine
// rejects are 422, store connectivity failures are 502.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDoseNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(c, http.StatusUnprocessableEntity, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrInvalidMedication), errors.Is(err, domain.ErrInvalidFrequency):
		respondError(c, http.StatusUnprocessableEntity, "invalid_medication", err.Error())
	case errors.Is(err, client.ErrStoreUnavailable):
		respondError(c, http.StatusBadGateway, "store_unavailable", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "schedule request failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
	}
}
