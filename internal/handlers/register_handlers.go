package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/queue_mood_board/cmd/docs"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/middleware"
	"github.com/SscSPs/queue_mood_board/internal/platform/config"
	"github.com/SscSPs/queue_mood_board/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Dependencies are the optional collaborators of the HTTP layer. Nil fields disable
// the matching feature.
type Dependencies struct {
	SubmitLimiter *limiter.Limiter
	Analytics     *utils.PosthogClientWrapper
	// HealthCheck, when set, is consulted by /health.
	HealthCheck func(ctx context.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps Dependencies,
) error {
	if err := registerMoodValidation(cfg.Moods); err != nil {
		return fmt.Errorf("failed to register mood validation: %w", err)
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Add health check route
	r.GET("/health", healthHandler(deps.HealthCheck))

	registerPageRoutes(r, newPageHandler(services.Mood, services.Refresher, deps.Analytics), deps.SubmitLimiter)

	setupAPIV1Routes(r, services, deps)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, deps Dependencies) {
	v1 := r.Group("/api/v1")

	registerMoodRoutes(v1, newMoodHandler(services.Mood, services.Refresher, deps.Analytics), deps.SubmitLimiter)
	registerDistributionRoutes(v1, newDistributionHandler(services.Mood, services.Refresher))
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
