package routes

import (
	"github.com/croissanceConsulting/coaching-sportif-tracker/config"
	"github.com/croissanceConsulting/coaching-sportif-tracker/controllers"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewDeps wires services and controllers over one record store and one session
// database. presigner may be nil.
func NewDeps(cfg *config.Config, db *gorm.DB, store services.RecordStore, presigner services.LinkPresigner, log zerolog.Logger) Deps {
	hub := services.NewRealtimeHub()
	alerts := services.NewAlertBus(db, hub, log)
	mock := services.NewMockProvider(cfg.MockDelay)

	students := services.NewStudentService(store, mock, log)
	calcs := services.NewCalculationService(store, mock, alerts, log)
	plans := services.NewMealPlanService(store, students, mock, alerts, log)
	ebooks := services.NewEbookService(store, mock, alerts, presigner, log)

	gates := services.NewGateRegistry(students, alerts, func(sessionID string) services.SessionStore {
		return services.NewGormSessionStore(db, sessionID)
	}, log)
	secret := []byte(cfg.JWTSecret)

	return Deps{
		Store:         store,
		Gates:         gates,
		Auth:          controllers.NewAuthController(gates, secret, cfg.TokenTTL),
		Student:       controllers.NewStudentController(calcs, plans, ebooks),
		Ebooks:        controllers.NewEbookController(ebooks, log),
		Notifications: controllers.NewNotificationController(alerts),
		Realtime:      controllers.NewRealtimeController(hub),
		Secret:        secret,
		Log:           log,
	}
}
