package services

// ServiceContainer holds instances of all the application services.
// It is built once per process and handed to the handlers; nothing reads
// services from package-level state.
type ServiceContainer struct {
	Mood      MoodSvcFacade
	Refresher RefreshSvc
}
