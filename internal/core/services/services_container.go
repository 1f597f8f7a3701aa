package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The mood service triggers the refresher after each submission, and the
	// refresher reads through the mood service, so the hook resolves lazily.
	container.Mood = NewMoodService(
		repos.MoodEntryRepo,
		cfg.Moods,
		WithLocation(cfg.Location),
		WithSubmitHook(func() {
			if container.Refresher != nil {
				container.Refresher.Trigger()
			}
		}),
	)
	container.Refresher = NewRefresher(container.Mood, cfg.RefreshInterval, logger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MoodSvcFacade = (*moodService)(nil)
	_ portssvc.RefreshSvc    = (*distributionRefresher)(nil)
)
