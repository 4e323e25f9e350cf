package services

import (
	"context"
	"testing"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StudentSession{}, &models.Alert{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGormSessionStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	a := NewGormSessionStore(db, "session-a")
	b := NewGormSessionStore(db, "session-b")

	_, ok, err := a.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, a.Save(ctx, "CODE-1"))
	require.NoError(t, a.Save(ctx, "CODE-2"))
	require.NoError(t, b.Save(ctx, "CODE-B"))

	code, ok, err := a.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "CODE-2", code)

	var rows int64
	require.NoError(t, db.Model(&models.StudentSession{}).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)

	require.NoError(t, a.Clear(ctx))
	_, ok, err = a.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	code, ok, _ = b.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "CODE-B", code)
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	s := &MemorySessionStore{}

	require.NoError(t, s.Save(ctx, "X"))
	code, ok, _ := s.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "X", code)

	require.NoError(t, s.Clear(ctx))
	_, ok, _ = s.Load(ctx)
	assert.False(t, ok)
}
