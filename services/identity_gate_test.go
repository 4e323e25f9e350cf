package services

import (
	"context"
	"sync"
	"testing"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lea = models.StudentIdentity{ID: "recLea", Name: "Léa", AccessCode: "LEA-1", Email: "lea@example.com"}

func leaVerifier(calls *int) AccessVerifier {
	return verifierFunc(func(_ context.Context, code string) (*models.StudentIdentity, error) {
		if calls != nil {
			*calls++
		}
		if code == lea.AccessCode {
			st := lea
			return &st, nil
		}
		return nil, nil
	})
}

func TestLoginSuccessPersistsCode(t *testing.T) {
	sessions := &MemorySessionStore{}
	n := &recordingNotifier{}
	gate := NewIdentityGate(leaVerifier(nil), sessions, n, zerolog.Nop())

	st, err := gate.Login(context.Background(), "LEA-1")
	require.NoError(t, err)
	assert.Equal(t, lea, *st)
	assert.Equal(t, LoggedIn, gate.State())

	current, ok := gate.Student()
	require.True(t, ok)
	assert.Equal(t, lea, current)

	code, ok, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "LEA-1", code)
	assert.Equal(t, []notification{{NotifySuccess, "Bienvenue, Léa !"}}, n.Sent())
}

func TestLoginInvalidCode(t *testing.T) {
	sessions := &MemorySessionStore{}
	n := &recordingNotifier{}
	gate := NewIdentityGate(leaVerifier(nil), sessions, n, zerolog.Nop())

	_, err := gate.Login(context.Background(), "WRONG")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
	assert.Equal(t, LoggedOut, gate.State())
	_, ok := gate.Student()
	assert.False(t, ok)

	_, ok, _ = sessions.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, []notification{{NotifyError, "Code d'accès invalide"}}, n.Sent())
}

func TestFailedReloginKeepsCurrentStudent(t *testing.T) {
	sessions := &MemorySessionStore{}
	n := &recordingNotifier{}
	gate := NewIdentityGate(leaVerifier(nil), sessions, n, zerolog.Nop())

	_, err := gate.Login(context.Background(), "LEA-1")
	require.NoError(t, err)

	_, err = gate.Login(context.Background(), "WRONG")
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
	assert.Equal(t, LoggedIn, gate.State())
	current, ok := gate.Student()
	require.True(t, ok)
	assert.Equal(t, lea, current)

	code, ok, _ := sessions.Load(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "LEA-1", code)
	assert.Equal(t, notification{NotifyError, "Code d'accès invalide"}, n.Sent()[1])
}

func TestLoginVerifierError(t *testing.T) {
	n := &recordingNotifier{}
	failing := verifierFunc(func(context.Context, string) (*models.StudentIdentity, error) { return nil, errUpstream })
	gate := NewIdentityGate(failing, &MemorySessionStore{}, n, zerolog.Nop())

	_, err := gate.Login(context.Background(), "LEA-1")
	assert.ErrorIs(t, err, errUpstream)
	assert.NotErrorIs(t, err, ErrInvalidAccessCode)
	assert.Equal(t, LoggedOut, gate.State())
	assert.Equal(t, []notification{{NotifyError, "Erreur lors de la connexion"}}, n.Sent())
}

func TestSeededIdentityBypassesVerifier(t *testing.T) {
	calls := 0
	failing := verifierFunc(func(context.Context, string) (*models.StudentIdentity, error) {
		calls++
		return nil, errUpstream
	})
	gate := NewIdentityGate(failing, &MemorySessionStore{}, &recordingNotifier{}, zerolog.Nop())

	st, err := gate.Login(context.Background(), "rech0KgjCrK24UrBH")
	require.NoError(t, err)
	assert.Equal(t, "Féline Faure", st.Name)
	assert.Equal(t, "feline.faure@example.com", st.Email)
	assert.Zero(t, calls)
}

func TestLogoutClearsEverything(t *testing.T) {
	sessions := &MemorySessionStore{}
	n := &recordingNotifier{}
	gate := NewIdentityGate(leaVerifier(nil), sessions, n, zerolog.Nop())

	_, err := gate.Login(context.Background(), "LEA-1")
	require.NoError(t, err)
	gate.Logout(context.Background())

	assert.Equal(t, LoggedOut, gate.State())
	_, ok := gate.Student()
	assert.False(t, ok)
	_, ok, _ = sessions.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, notification{NotifySuccess, "Déconnexion réussie"}, n.Sent()[1])

	_, err = gate.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRestoreReproducesIdentity(t *testing.T) {
	sessions := &MemorySessionStore{}
	calls := 0
	first := NewIdentityGate(leaVerifier(&calls), sessions, NopNotifier{}, zerolog.Nop())
	_, err := first.Login(context.Background(), "LEA-1")
	require.NoError(t, err)

	reloaded := NewIdentityGate(leaVerifier(&calls), sessions, NopNotifier{}, zerolog.Nop())
	st, err := reloaded.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lea, *st)
	assert.Equal(t, LoggedIn, reloaded.State())
	assert.Equal(t, 2, calls)
}

func TestRestoreClearsRevokedCode(t *testing.T) {
	sessions := &MemorySessionStore{}
	require.NoError(t, sessions.Save(context.Background(), "REVOKED"))
	gate := NewIdentityGate(leaVerifier(nil), sessions, NopNotifier{}, zerolog.Nop())

	_, err := gate.Restore(context.Background())
	assert.ErrorIs(t, err, ErrInvalidAccessCode)
	_, ok, _ := sessions.Load(context.Background())
	assert.False(t, ok)
}

func TestRestoreKeepsCodeWhenStoreDown(t *testing.T) {
	sessions := &MemorySessionStore{}
	require.NoError(t, sessions.Save(context.Background(), "LEA-1"))
	failing := verifierFunc(func(context.Context, string) (*models.StudentIdentity, error) { return nil, errUpstream })
	gate := NewIdentityGate(failing, sessions, NopNotifier{}, zerolog.Nop())

	_, err := gate.Restore(context.Background())
	assert.Error(t, err)
	code, ok, _ := sessions.Load(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "LEA-1", code)
}

func TestLogoutDuringLoginDiscardsOutcome(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	slow := verifierFunc(func(context.Context, string) (*models.StudentIdentity, error) {
		close(entered)
		<-release
		st := lea
		return &st, nil
	})
	sessions := &MemorySessionStore{}
	n := &recordingNotifier{}
	gate := NewIdentityGate(slow, sessions, n, zerolog.Nop())

	var wg sync.WaitGroup
	var loginErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, loginErr = gate.Login(context.Background(), "LEA-1")
	}()

	<-entered
	assert.Equal(t, Authenticating, gate.State())
	gate.Logout(context.Background())
	close(release)
	wg.Wait()

	assert.ErrorIs(t, loginErr, ErrLoginSuperseded)
	assert.Equal(t, LoggedOut, gate.State())
	_, ok, _ := sessions.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, []notification{{NotifySuccess, "Déconnexion réussie"}}, n.Sent())
}

func TestGateStateString(t *testing.T) {
	assert.Equal(t, "logged_out", LoggedOut.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "logged_in", LoggedIn.String())
	assert.Equal(t, "GateState(7)", GateState(7).String())
}
