package services

import (
	"context"
	"errors"
	"sync"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionStore is the single persisted slot of one browser session: the
// access code of the last successful login. Nothing else survives a reload.
type SessionStore interface {
	Load(ctx context.Context) (code string, ok bool, err error)
	Save(ctx context.Context, code string) error
	Clear(ctx context.Context) error
}

// GormSessionStore keeps the slot in the student_sessions table.
type GormSessionStore struct {
	db        *gorm.DB
	sessionID string
}

func NewGormSessionStore(db *gorm.DB, sessionID string) *GormSessionStore {
	return &GormSessionStore{db: db, sessionID: sessionID}
}

func (s *GormSessionStore) Load(ctx context.Context) (string, bool, error) {
	var row models.StudentSession
	err := s.db.WithContext(ctx).First(&row, "session_id = ?", s.sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.AccessCode, row.AccessCode != "", nil
}

func (s *GormSessionStore) Save(ctx context.Context, code string) error {
	row := models.StudentSession{SessionID: s.sessionID, AccessCode: code}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_code", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *GormSessionStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("session_id = ?", s.sessionID).
		Delete(&models.StudentSession{}).Error
}

// MemorySessionStore is a process-local slot, used by the CLI and tests.
type MemorySessionStore struct {
	mu   sync.Mutex
	code string
}

func (s *MemorySessionStore) Load(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code, s.code != "", nil
}

func (s *MemorySessionStore) Save(_ context.Context, code string) error {
	s.mu.Lock()
	s.code = code
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(context.Context) error {
	s.mu.Lock()
	s.code = ""
	s.mu.Unlock()
	return nil
}
