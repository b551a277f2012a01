package router

import (
	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/internal/container"
	esinfra "github.com/oksasatya/go-barber/internal/infrastructure/elasticsearch"
	pginfra "github.com/oksasatya/go-barber/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-barber/internal/interface/http"
	"github.com/oksasatya/go-barber/internal/router/modules"
	"github.com/oksasatya/go-barber/pkg/helpers"
)

// Services groups the application layer built from the container singletons.
type Services struct {
	Users         *app.UserService
	Sessions      *app.SessionService
	Appointments  *app.AppointmentService
	Providers     *app.ProviderService
	Notifications *app.NotificationService
	Files         *app.FileService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(container.GetPGPool())
	files := pginfra.NewFileRepository(container.GetPGPool())
	appointments := pginfra.NewAppointmentRepository(container.GetPGPool())
	notifications := esinfra.NewNotificationRepository(container.GetES(), cfg.ESNotificationsIndex)

	// a nil *RabbitPublisher must not become a non-nil interface
	var pub app.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	var uploader app.ObjectUploader
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		uploader = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}

	return Services{
		Users:         app.NewUserService(users, files, rdb, logger),
		Sessions:      app.NewSessionService(users, container.GetJWT(), logger),
		Appointments:  app.NewAppointmentService(appointments, users, notifications, app.NewMailDispatcher(pub, cfg, logger), logger),
		Providers:     app.NewProviderService(users, appointments, rdb, cfg.ProvidersCacheTTL, logger),
		Notifications: app.NewNotificationService(notifications, users),
		Files:         app.NewFileService(files, uploader, logger),
	}
}

// InitModules wires every feature module into the registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	filesURL := cfg.FilesURL()
	svc := buildServices()

	r.Add(modules.NewAccountModule(
		handlers.NewUserHandler(svc.Users, logger, filesURL),
		handlers.NewSessionHandler(svc.Sessions, logger, filesURL),
		svc.Sessions,
	))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(svc.Appointments, logger, filesURL), svc.Sessions))
	r.Add(modules.NewProviderModule(handlers.NewProviderHandler(svc.Providers, logger, filesURL), svc.Sessions))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, logger), svc.Sessions))
	r.Add(modules.NewFileModule(handlers.NewFileHandler(svc.Files, logger, filesURL), svc.Sessions))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(cfg.Env))
	}
}
