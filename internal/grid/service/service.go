package service

import (
	"github.com/maham-nadeemm/APDS/internal/config"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
	"github.com/redis/go-redis/v9"
)

// Services is the wired service set.
type Services struct {
	Auth                 *AuthService
	Registry             *RegistryService
	Monitoring           *MonitoringService
	Fault                *FaultService
	Escalation           *EscalationService
	Report               *ReportService
	PerformanceReport    *PerformanceReportService
	Documentation        *DocumentationService
	Reverification       *ReverificationService
	DeliveryVerification *DeliveryVerificationService
	Notification         *NotificationService
}

// NewServices wires the services over the repositories and attaches the
// notification observer to the dispatcher. rdb may be nil; the notification
// service then skips its cache.
func NewServices(repos *repository.Repositories, dispatcher *events.Dispatcher, rdb *redis.Client, cfg *config.Config) *Services {
	notifSvc := NewNotificationService(repos.Notification, repos.User, rdb)
	dispatcher.Attach(NewNotificationObserver(notifSvc))

	escalationSvc := NewEscalationService(repos.Escalation, repos.Fault, repos.User, dispatcher)
	if cfg != nil && cfg.Escalation.TimeThreshold > 0 {
		timeBased := NewTimeBasedStrategy(cfg.Escalation.TimeThreshold)
		escalationSvc.strategies[timeBased.Name()] = timeBased
	}

	return &Services{
		Auth:                 NewAuthService(repos.User, cfg),
		Registry:             NewRegistryService(repos.Equipment, repos.Vendor, repos.User),
		Monitoring:           NewMonitoringService(repos.Monitoring, repos.Equipment),
		Fault:                NewFaultService(repos.Fault, repos.Equipment, dispatcher),
		Escalation:           escalationSvc,
		Report:               NewReportService(repos.Report, repos.Fault, repos.User, dispatcher),
		PerformanceReport:    NewPerformanceReportService(repos.PerformanceReport, repos.Monitoring, repos.User),
		Documentation:        NewDocumentationService(repos.Documentation, repos.Fault, repos.User, dispatcher),
		Reverification:       NewReverificationService(repos.Reverification, repos.Monitoring, repos.User, dispatcher),
		DeliveryVerification: NewDeliveryVerificationService(repos.DeliveryVerification, repos.Vendor, repos.Equipment, repos.User, dispatcher),
		Notification:         notifSvc,
	}
}
