package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
)

const (
	DashboardPath = "/dashboard"
	LoginPath     = "/"
)

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

// ErrLoginSuperseded is returned by a login whose outcome arrived after a
// logout or a newer login on the same gate; the outcome is discarded.
var ErrLoginSuperseded = errors.New("login superseded")

// SeededIdentities are pre-provisioned students accepted without consulting
// the store, whether or not it is reachable.
var SeededIdentities = map[string]models.StudentIdentity{
	"rech0KgjCrK24UrBH": {
		ID:         "rech0KgjCrK24UrBH",
		Name:       "Féline Faure",
		AccessCode: "rech0KgjCrK24UrBH",
		Email:      "feline.faure@example.com",
	},
}

type GateState int

const (
	LoggedOut GateState = iota
	Authenticating
	LoggedIn
)

func (s GateState) String() string {
	switch s {
	case LoggedOut:
		return "logged_out"
	case Authenticating:
		return "authenticating"
	case LoggedIn:
		return "logged_in"
	default:
		return fmt.Sprintf("GateState(%d)", int(s))
	}
}

// AccessVerifier checks an access code against the student records.
type AccessVerifier interface {
	VerifyAccess(ctx context.Context, code string) (*models.StudentIdentity, error)
}

// IdentityGate holds the authenticated student of one browser session.
// Only the access code is persisted, through the session store; the identity
// itself lives in memory and is rebuilt by Restore.
type IdentityGate struct {
	verifier AccessVerifier
	sessions SessionStore
	notifier Notifier
	seeded   map[string]models.StudentIdentity
	log      zerolog.Logger

	mu         sync.Mutex
	state      GateState
	student    *models.StudentIdentity
	generation uint64
}

func NewIdentityGate(verifier AccessVerifier, sessions SessionStore, notifier Notifier, log zerolog.Logger) *IdentityGate {
	return &IdentityGate{
		verifier: verifier,
		sessions: sessions,
		notifier: notifier,
		seeded:   SeededIdentities,
		log:      log,
	}
}

func (g *IdentityGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Student returns a copy of the authenticated identity. A student already
// logged in stays available while a new login is being verified.
func (g *IdentityGate) Student() (models.StudentIdentity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.student == nil {
		return models.StudentIdentity{}, false
	}
	return *g.student, true
}

// Login verifies code and, on success, holds the identity and persists the code.
// A failed login leaves the current student, and the saved code, untouched.
func (g *IdentityGate) Login(ctx context.Context, code string) (*models.StudentIdentity, error) {
	g.mu.Lock()
	g.generation++
	gen := g.generation
	g.state = Authenticating
	g.mu.Unlock()

	student, verr := g.verify(ctx, code)

	g.mu.Lock()
	if gen != g.generation {
		g.mu.Unlock()
		g.log.Debug().Msg("discarding stale login outcome")
		return nil, ErrLoginSuperseded
	}
	if verr != nil || student == nil {
		g.state = LoggedOut
		if g.student != nil {
			g.state = LoggedIn
		}
		g.mu.Unlock()

		if verr != nil {
			g.log.Error().Err(verr).Msg("login error")
			g.notifier.Notify(ctx, NotifyError, "Erreur lors de la connexion")
			return nil, fmt.Errorf("login: %w", verr)
		}
		g.log.Info().Msg("invalid access code")
		g.notifier.Notify(ctx, NotifyError, "Code d'accès invalide")
		return nil, ErrInvalidAccessCode
	}
	g.state = LoggedIn
	g.student = student
	g.mu.Unlock()

	if err := g.sessions.Save(ctx, code); err != nil {
		g.log.Error().Err(err).Msg("failed to persist session, it will not survive a reload")
	}
	g.log.Info().Str("student_id", student.ID).Msg("login succeeded")
	g.notifier.Notify(ctx, NotifySuccess, fmt.Sprintf("Bienvenue, %s !", student.Name))

	out := *student
	return &out, nil
}

func (g *IdentityGate) verify(ctx context.Context, code string) (*models.StudentIdentity, error) {
	if st, ok := g.seeded[code]; ok {
		return &st, nil
	}
	if code == "" {
		return nil, nil
	}
	return g.verifier.VerifyAccess(ctx, code)
}

// Restore replays the persisted access code through Login, the way a page
// reload re-authenticates. A code the store no longer recognises is cleared;
// one that could not be checked is kept for the next attempt.
func (g *IdentityGate) Restore(ctx context.Context) (*models.StudentIdentity, error) {
	code, ok, err := g.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNotAuthenticated
	}

	student, err := g.Login(ctx, code)
	if errors.Is(err, ErrInvalidAccessCode) {
		if cerr := g.sessions.Clear(ctx); cerr != nil {
			g.log.Error().Err(cerr).Msg("failed to clear stale session")
		}
	}
	return student, err
}

// Logout forgets the identity and the persisted code unconditionally.
func (g *IdentityGate) Logout(ctx context.Context) {
	g.mu.Lock()
	g.generation++
	g.state = LoggedOut
	g.student = nil
	g.mu.Unlock()

	if err := g.sessions.Clear(ctx); err != nil {
		g.log.Error().Err(err).Msg("failed to clear persisted session")
	}
	g.notifier.Notify(ctx, NotifySuccess, "Déconnexion réussie")
}
