package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/dto"
	"github.com/SscSPs/queue_mood_board/internal/middleware"
	"github.com/gin-gonic/gin"
)

// distributionEvent is the SSE event name carrying a dto.DistributionResponse.
const distributionEvent = "distribution"

// distributionHandler serves the chart data.
type distributionHandler struct {
	moodService portssvc.MoodReaderSvc
	refresher   portssvc.RefreshSvc
	now         func() time.Time
}

func newDistributionHandler(ms portssvc.MoodReaderSvc, refresher portssvc.RefreshSvc) *distributionHandler {
	return &distributionHandler{moodService: ms, refresher: refresher, now: time.Now}
}

func registerDistributionRoutes(rg *gin.RouterGroup, h *distributionHandler) {
	d := rg.Group("/distribution")
	{
		d.GET("", h.getDistribution)
		d.GET("/stream", h.streamDistribution)
	}
}

// getDistribution godoc
// @Summary Mood distribution
// @Description Counts readings per mood between start and end inclusive. Both default to today.
// @Tags distribution
// @Produce  json
// @Param   start query string false "First day (YYYY-MM-DD)"
// @Param   end query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} dto.DistributionResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 502 {object} dto.DistributionResponse "Store unavailable"
// @Router /distribution [get]
func (h *distributionHandler) getDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}
	start, end, err := resolveRange(q, h.moodService.Today())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dist, err := h.moodService.RangeDistribution(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute distribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.UnavailableDistributionResponse(start, end, readMessage, h.now()))
		return
	}

	c.JSON(http.StatusOK, dto.ToDistributionResponse(dist, h.moodService.Options(), h.now()))
}

// streamDistribution godoc
// @Summary Live mood distribution
// @Description Server-Sent Events stream of today's distribution. One event is sent on connect,
// @Description then one per refresh (timer or new submission).
// @Tags distribution
// @Produce  text/event-stream
// @Success 200 {object} dto.DistributionResponse "distribution events"
// @Router /distribution/stream [get]
func (h *distributionHandler) streamDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	updates, unsubscribe := h.refresher.Subscribe()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Initial snapshot so the chart does not wait for the first tick.
	dist, err := h.moodService.TodayDistribution(c.Request.Context())
	c.SSEvent(distributionEvent, h.toResponse(domain.DistributionUpdate{Distribution: dist, Err: err, GeneratedAt: h.now()}))
	c.Writer.Flush()

	logger.Debug("Distribution stream opened")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case u, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent(distributionEvent, h.toResponse(u))
			return true
		}
	})
	logger.Debug("Distribution stream closed")
}

func (h *distributionHandler) toResponse(u domain.DistributionUpdate) dto.DistributionResponse {
	if u.Err != nil || u.Distribution == nil {
		today := h.moodService.Today()
		return dto.UnavailableDistributionResponse(today, today, readMessage, u.GeneratedAt)
	}
	return dto.ToDistributionResponse(u.Distribution, h.moodService.Options(), u.GeneratedAt)
}
