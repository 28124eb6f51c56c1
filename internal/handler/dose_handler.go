package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/schedule"
)

type DoseHandler struct {
	scheduleService *schedule.Service
}

func NewDoseHandler(scheduleService *schedule.Service) *DoseHandler {
	return &DoseHandler{
		scheduleService: scheduleService,
	}
}

type updateDoseStatusRequest struct {
	Status    string  `json:"status" binding:"required"`
	TakenTime *string `json:"taken_time,omitempty"`
}

// HandleUpdateDoseStatus transitions a single dose through its status
// machine. taken_time is only meaningful for transitions into taken and
// defaults to the observation instant.
func (h *DoseHandler) HandleUpdateDoseStatus(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("userID")
	doseID := c.Param("doseID")
	if userID == "" || doseID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "userID and doseID are required")
		return
	}

	var req updateDoseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "dose status request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	next := domain.DoseStatus(req.Status)
	if err := next.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	now, ok := parseNow(c)
	if !ok {
		return
	}

	var takenAt *time.Time
	if req.TakenTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.TakenTime)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid taken_time format, expected RFC3339")
			return
		}
		takenAt = &parsed
	}

	updated, err := h.scheduleService.UpdateDoseStatus(ctx, userID, doseID, next, now, takenAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "dose status updated",
		slog.String("dose_id", doseID),
		slog.String("status", next.String()),
	)

	c.JSON(http.StatusOK, updated)
}

// HandleRegisterTriggers derives the day's notification triggers. With
// register=true each trigger is also handed to the delivery queue.
func (h *DoseHandler) HandleRegisterTriggers(c *gin.Context) {
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

	register := c.Query("register") == "true"

	result, err := h.scheduleService.RegisterTriggers(ctx, userID, register, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
