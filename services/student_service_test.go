package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAccess(t *testing.T) {
	t.Run("code column", func(t *testing.T) {
		store := newFakeStore()
		store.formulas[`{code}='ABC'`] = []Record{{"id": "recA", "Nom": "Léa", "Email": "lea@example.com"}}

		st, err := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).VerifyAccess(context.Background(), "ABC")
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "recA", st.ID)
		assert.Equal(t, "ABC", st.AccessCode)
		assert.Equal(t, "lea@example.com", st.Email)
	})

	t.Run("record id", func(t *testing.T) {
		store := newFakeStore()
		store.formulas[`RECORD_ID()="recA"`] = []Record{{"id": "recA", "Name": "Léa"}}

		st, err := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).VerifyAccess(context.Background(), "recA")
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, "Léa", st.Name)
	})

	t.Run("no match", func(t *testing.T) {
		st, err := NewStudentService(newFakeStore(), NewMockProvider(0), zerolog.Nop()).VerifyAccess(context.Background(), "nope")
		assert.NoError(t, err)
		assert.Nil(t, st)
	})

	t.Run("empty code", func(t *testing.T) {
		store := newFakeStore()
		st, err := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).VerifyAccess(context.Background(), "")
		assert.NoError(t, err)
		assert.Nil(t, st)
		assert.Empty(t, store.Calls())
	})

	t.Run("store down", func(t *testing.T) {
		store := newFakeStore()
		store.failAll = errUpstream
		st, err := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).VerifyAccess(context.Background(), "ABC")
		assert.ErrorIs(t, err, errUpstream)
		assert.Nil(t, st)
	})

	t.Run("unconfigured uses demo students", func(t *testing.T) {
		store := newFakeStore()
		store.configured = false
		svc := NewStudentService(store, NewMockProvider(0), zerolog.Nop())

		st, err := svc.VerifyAccess(context.Background(), "DEMO-CAMILLE")
		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, camilleID, st.ID)

		st, err = svc.VerifyAccess(context.Background(), "unknown")
		assert.NoError(t, err)
		assert.Nil(t, st)
		assert.Empty(t, store.Calls())
	})
}

func TestResolveStudentName(t *testing.T) {
	t.Run("table scan", func(t *testing.T) {
		store := newFakeStore()
		store.tables[studentsTable] = []Record{
			{"id": "recB", "Nom": "Autre"},
			{"id": "recX", "IDU Eleve": "recA", "Nom complet": "Féline Faure"},
		}
		name := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).ResolveStudentName(context.Background(), "recA")
		assert.Equal(t, "Féline Faure", name)
		assert.Len(t, store.Calls(), 3)
	})

	t.Run("falls back to id", func(t *testing.T) {
		store := newFakeStore()
		store.failAll = errUpstream
		name := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).ResolveStudentName(context.Background(), "recA")
		assert.Equal(t, "recA", name)
	})

	t.Run("record without name", func(t *testing.T) {
		store := newFakeStore()
		store.formulas[`{ID}='recA'`] = []Record{{"id": "recA"}}
		name := NewStudentService(store, NewMockProvider(0), zerolog.Nop()).ResolveStudentName(context.Background(), "recA")
		assert.Equal(t, "recA", name)
	})

	t.Run("unconfigured", func(t *testing.T) {
		store := newFakeStore()
		store.configured = false
		svc := NewStudentService(store, NewMockProvider(0), zerolog.Nop())
		assert.Equal(t, "Camille Martin", svc.ResolveStudentName(context.Background(), camilleID))
		assert.Equal(t, "recZ", svc.ResolveStudentName(context.Background(), "recZ"))
	})
}
