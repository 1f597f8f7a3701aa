package handlers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/dto"
	"github.com/SscSPs/queue_mood_board/internal/middleware"
	"github.com/SscSPs/queue_mood_board/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

const (
	dashboardTemplate = "dashboard.html"

	persistMessage    = "Could not save your mood. The mood log is unreachable right now; please try again."
	readMessage       = "Chart unavailable: the mood log could not be read."
	rangeOrderMessage = "End date must be on or after the start date."

	// defaultRangeDays is the span the range chart opens with, today included.
	defaultRangeDays = 7
)

//go:embed templates/*.html
var templateFS embed.FS

// loadTemplates parses the embedded page templates.
func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"barHeight": func(b dto.MoodCountResponse) string { return b.Share.StringFixed(1) },
	}).ParseFS(templateFS, "templates/*.html")
}

// pageData is everything the dashboard template renders.
type pageData struct {
	Options        []domain.MoodOption
	Selected       string
	Note           string
	Error          string
	Logged         bool
	Chart          dto.DistributionResponse
	RefreshSeconds int

	RangeStart string
	RangeEnd   string
	RangeError string
	Range      *dto.DistributionResponse
}

// pageHandler serves the HTML Input Panel and its no-script form fallback.
type pageHandler struct {
	moodService portssvc.MoodSvcFacade
	refresher   portssvc.RefreshSvc
	analytics   *utils.PosthogClientWrapper
	now         func() time.Time
}

func newPageHandler(ms portssvc.MoodSvcFacade, refresher portssvc.RefreshSvc, analytics *utils.PosthogClientWrapper) *pageHandler {
	return &pageHandler{moodService: ms, refresher: refresher, analytics: analytics, now: time.Now}
}

func registerPageRoutes(r *gin.Engine, h *pageHandler, submitLimiter *limiter.Limiter) {
	r.GET("/", h.getDashboard)
	r.POST("/moods", middleware.RateLimitWithHandler(submitLimiter, h.rateLimited), h.postMoodForm)
}

func (h *pageHandler) getDashboard(c *gin.Context) {
	data := h.baseData(c)
	data.Logged = c.Query("logged") == "1"
	if selected, ok := h.moodService.Resolve(c.Query("mood")); ok {
		data.Selected = selected
	}
	status := h.loadRange(c, &data)
	c.HTML(status, dashboardTemplate, data)
}

// loadRange fills the range chart when the range form was submitted. Without
// start or end the page keeps the default range and the script loads it.
func (h *pageHandler) loadRange(c *gin.Context, data *pageData) int {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		data.RangeError = bindingErrorMessage(err)
		return http.StatusBadRequest
	}
	if q.Start == "" && q.End == "" {
		return http.StatusOK
	}
	if q.Start == "" {
		q.Start = data.RangeStart
	}
	if q.End == "" {
		q.End = data.RangeEnd
	}
	data.RangeStart, data.RangeEnd = q.Start, q.End

	start, end, err := resolveRange(q, h.moodService.Today())
	if err != nil {
		data.RangeError = err.Error()
		return http.StatusBadRequest
	}

	dist, err := h.moodService.RangeDistribution(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			data.RangeError = rangeOrderMessage
			return http.StatusBadRequest
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Range chart unavailable", slog.String("error", err.Error()))
		data.RangeError = readMessage
		return http.StatusOK
	}
	resp := dto.ToDistributionResponse(dist, data.Options, h.now())
	data.Range = &resp
	return http.StatusOK
}

// postMoodForm is the form fallback for browsers without script. On success it
// redirects so a reload does not resubmit; on failure the page is rendered again
// with the user's mood and note kept.
func (h *pageHandler) postMoodForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitMoodRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for SubmitMood", slog.String("error", err.Error()))
		h.renderFailure(c, http.StatusBadRequest, req, bindingErrorMessage(err))
		return
	}

	entry, err := h.moodService.SubmitMood(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			h.renderFailure(c, http.StatusBadRequest, req, err.Error())
		case errors.Is(err, apperrors.ErrPersist):
			logger.Error("Failed to save mood", slog.String("error", err.Error()))
			h.renderFailure(c, http.StatusBadGateway, req, persistMessage)
		default:
			logger.Error("Unexpected error submitting mood", slog.String("error", err.Error()))
			h.renderFailure(c, http.StatusInternalServerError, req, "Failed to save mood")
		}
		return
	}

	middleware.PosthogEvent(c, h.analytics, "mood_submitted", map[string]any{"mood": entry.Mood, "has_note": entry.Note != ""})
	logger.Info("Mood saved", slog.String("mood", entry.Mood))
	c.Redirect(http.StatusSeeOther, "/?logged=1&mood="+url.QueryEscape(entry.Mood))
}

// rateLimited answers a throttled form post with the page instead of JSON.
func (h *pageHandler) rateLimited(c *gin.Context) {
	var req dto.SubmitMoodRequest
	_ = c.ShouldBind(&req)
	h.renderFailure(c, http.StatusTooManyRequests, req, middleware.RateLimitMessage)
}

func (h *pageHandler) renderFailure(c *gin.Context, status int, req dto.SubmitMoodRequest, message string) {
	data := h.baseData(c)
	data.Error = message
	data.Note = req.Note
	if selected, ok := h.moodService.Resolve(req.Mood); ok {
		data.Selected = selected
	}
	c.HTML(status, dashboardTemplate, data)
}

func (h *pageHandler) baseData(c *gin.Context) pageData {
	today := h.moodService.Today()
	data := pageData{
		Options:        h.moodService.Options(),
		RefreshSeconds: int(h.refresher.Interval().Seconds()),
		RangeStart:     today.AddDays(1 - defaultRangeDays).String(),
		RangeEnd:       today.String(),
	}
	dist, err := h.moodService.TodayDistribution(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Chart unavailable", slog.String("error", err.Error()))
		data.Chart = dto.UnavailableDistributionResponse(today, today, readMessage, h.now())
	} else {
		data.Chart = dto.ToDistributionResponse(dist, data.Options, h.now())
	}
	return data
}
