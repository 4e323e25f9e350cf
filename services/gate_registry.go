package services

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

type gateEntry struct {
	gate    *IdentityGate
	restore sync.Once
}

// GateRegistry keeps one IdentityGate per browser session. The first time a
// session is seen in this process its gate restores the persisted login.
type GateRegistry struct {
	verifier AccessVerifier
	notifier Notifier
	newStore func(sessionID string) SessionStore
	log      zerolog.Logger

	mu    sync.Mutex
	gates map[string]*gateEntry
}

func NewGateRegistry(verifier AccessVerifier, notifier Notifier, newStore func(sessionID string) SessionStore, log zerolog.Logger) *GateRegistry {
	return &GateRegistry{
		verifier: verifier,
		notifier: notifier,
		newStore: newStore,
		log:      log,
		gates:    make(map[string]*gateEntry),
	}
}

// Gate returns the session's gate, restoring it on first use. Concurrent
// callers for a new session wait for the same restore.
func (r *GateRegistry) Gate(ctx context.Context, sessionID string) *IdentityGate {
	r.mu.Lock()
	e, ok := r.gates[sessionID]
	if !ok {
		log := r.log.With().Str("session_id", sessionID).Logger()
		e = &gateEntry{gate: NewIdentityGate(r.verifier, r.newStore(sessionID), r.notifier, log)}
		r.gates[sessionID] = e
	}
	r.mu.Unlock()

	e.restore.Do(func() {
		rctx := context.WithoutCancel(WithSessionID(ctx, sessionID))
		if _, err := e.gate.Restore(rctx); err != nil && !errors.Is(err, ErrNotAuthenticated) {
			e.gate.log.Warn().Err(err).Msg("session restore failed")
		}
	})
	return e.gate
}

// Drop forgets the in-memory gate of a session. Its saved code, if any, is
// kept and restored the next time the session is seen.
func (r *GateRegistry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.gates, sessionID)
	r.mu.Unlock()
}

// SessionForgetter is implemented by notifiers that keep per-session state.
type SessionForgetter interface {
	ForgetSession(ctx context.Context, sessionID string) error
}

// Discard drops a session that was never handed to a client, along with
// anything the notifier recorded for it.
func (r *GateRegistry) Discard(ctx context.Context, sessionID string) {
	r.Drop(sessionID)
	if f, ok := r.notifier.(SessionForgetter); ok {
		if err := f.ForgetSession(ctx, sessionID); err != nil {
			r.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to forget session")
		}
	}
}

// Len reports how many gates are held in memory.
func (r *GateRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gates)
}
