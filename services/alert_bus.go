package services

import (
	"context"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AlertBus is the Notifier used by the HTTP server. Each message is stored
// against the session found in ctx and pushed to its open sockets.
type AlertBus struct {
	db  *gorm.DB
	rt  *RealtimeHub
	log zerolog.Logger
}

func NewAlertBus(db *gorm.DB, rt *RealtimeHub, log zerolog.Logger) *AlertBus {
	return &AlertBus{db: db, rt: rt, log: log}
}

func (b *AlertBus) Notify(ctx context.Context, kind NotificationKind, message string) {
	sessionID := SessionIDFromContext(ctx)
	if sessionID == "" {
		b.log.Debug().Str("kind", string(kind)).Str("message", message).Msg("notification without session dropped")
		return
	}

	a := &models.Alert{SessionID: sessionID, Type: string(kind), Message: message, CreatedAt: time.Now()}
	// the request may already be gone; the alert still belongs to the session
	if err := b.db.WithContext(context.WithoutCancel(ctx)).Create(a).Error; err != nil {
		b.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to store notification")
	}

	if b.rt != nil {
		n, err := b.rt.Broadcast(sessionID, map[string]any{
			"kind":  "notification",
			"alert": a,
		})
		if err != nil {
			b.log.Error().Err(err).Msg("failed to broadcast notification")
		} else if n < b.rt.Connected(sessionID) {
			b.log.Warn().Str("session_id", sessionID).Msg("notification dropped for a slow socket")
		}
	}
}

// Recent returns the latest notifications of a session, newest first.
func (b *AlertBus) Recent(ctx context.Context, sessionID string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := b.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// ForgetSession deletes every notification stored for a session.
func (b *AlertBus) ForgetSession(ctx context.Context, sessionID string) error {
	return b.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.Alert{}).Error
}

// LogNotifier writes notifications to the log, for the command line.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(_ context.Context, kind NotificationKind, message string) {
	ev := n.Log.Info()
	if kind == NotifyError {
		ev = n.Log.Warn()
	}
	ev.Str("kind", string(kind)).Msg(message)
}
