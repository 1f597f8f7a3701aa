package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/dto"
	"github.com/SscSPs/queue_mood_board/internal/middleware"
	"github.com/SscSPs/queue_mood_board/internal/utils"
	"github.com/SscSPs/queue_mood_board/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

const defaultPageSize = 100

// moodHandler handles HTTP requests related to mood readings.
type moodHandler struct {
	moodService portssvc.MoodSvcFacade
	refresher   portssvc.RefreshSvc
	analytics   *utils.PosthogClientWrapper
}

func newMoodHandler(ms portssvc.MoodSvcFacade, refresher portssvc.RefreshSvc, analytics *utils.PosthogClientWrapper) *moodHandler {
	return &moodHandler{
		moodService: ms,
		refresher:   refresher,
		analytics:   analytics,
	}
}

// registerMoodRoutes registers routes related to mood readings.
func registerMoodRoutes(rg *gin.RouterGroup, h *moodHandler, submitLimiter *limiter.Limiter) {
	moods := rg.Group("/moods")
	{
		moods.GET("/options", h.getOptions)
		moods.GET("", h.listMoods)
		moods.POST("", middleware.RateLimit(submitLimiter), h.submitMood)
	}
}

// submitMood godoc
// @Summary Log a mood reading
// @Description Appends a reading stamped with the server time. The mood may be the emoji or its label.
// @Tags moods
// @Accept  json
// @Produce  json
// @Param   mood body dto.SubmitMoodRequest true "Mood reading"
// @Success 201 {object} dto.MoodEntryResponse
// @Failure 400 {object} map[string]string "No mood or unknown mood"
// @Failure 429 {object} map[string]string "Too many submissions"
// @Failure 502 {object} map[string]string "Store unavailable"
// @Router /moods [post]
func (h *moodHandler) submitMood(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitMood", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	entry, err := h.moodService.SubmitMood(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error submitting mood", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrPersist) {
			logger.Error("Failed to save mood", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": persistMessage})
		} else {
			logger.Error("Unexpected error submitting mood", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mood"})
		}
		return
	}

	middleware.PosthogEvent(c, h.analytics, "mood_submitted", map[string]any{"mood": entry.Mood, "has_note": entry.Note != ""})
	logger.Info("Mood saved", slog.String("mood", entry.Mood))
	c.JSON(http.StatusCreated, dto.ToMoodEntryResponse(entry, h.moodService.Options()))
}

// listMoods godoc
// @Summary List mood readings
// @Description Returns the readings between start and end inclusive, oldest first. Both default to today.
// @Tags moods
// @Produce  json
// @Param   start query string false "First day (YYYY-MM-DD)"
// @Param   end query string false "Last day (YYYY-MM-DD)"
// @Param   limit query int false "Page size (1-500, default 100)"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListMoodEntriesResponse
// @Failure 400 {object} map[string]string "Invalid date range or token"
// @Failure 502 {object} map[string]string "Store unavailable"
// @Router /moods [get]
func (h *moodHandler) listMoods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ListMoodEntriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	start, end, err := resolveRange(q.DateRangeQuery, h.moodService.Today())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.moodService.ListEntries(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list moods", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": readMessage})
		}
		return
	}

	page, next, err := pagination.Page(entries, q.Limit, q.NextToken, func(e domain.MoodEntry) time.Time { return e.Timestamp })
	if err != nil {
		logger.Warn("Rejected pagination token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ListMoodEntriesResponse{
		Entries:   dto.ToListMoodEntryResponse(page, h.moodService.Options()),
		NextToken: next,
	})
}

// getOptions godoc
// @Summary Mood board configuration
// @Description Returns the mood options in display order and the chart refresh interval.
// @Tags moods
// @Produce  json
// @Success 200 {object} dto.MoodOptionsResponse
// @Router /moods/options [get]
func (h *moodHandler) getOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MoodOptionsResponse{
		Options:                h.moodService.Options(),
		RefreshIntervalSeconds: int(h.refresher.Interval().Seconds()),
		Today:                  h.moodService.Today().String(),
	})
}
