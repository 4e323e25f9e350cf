package services

import (
	"context"
	"errors"
	"sync"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"
)

var errUpstream = errors.New("upstream unavailable")

// fakeStore answers from in-memory tables. Formula queries are keyed by the
// decoded formula text.
type fakeStore struct {
	mu         sync.Mutex
	configured bool
	tables     map[string][]Record
	formulas   map[string][]Record
	failAll    error
	failOn     map[string]error
	calls      []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configured: true,
		tables:     map[string][]Record{},
		formulas:   map[string][]Record{},
		failOn:     map[string]error{},
	}
}

func (f *fakeStore) FetchFromAirtable(_ context.Context, table string, opts QueryOptions) ([]Record, error) {
	formula := DecodeFormula(opts.FilterByFormula)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, table+"|"+formula)

	if f.failAll != nil {
		return nil, f.failAll
	}
	if err := f.failOn[formula]; err != nil {
		return nil, err
	}
	if formula == "" {
		return f.tables[table], nil
	}
	return f.formulas[formula], nil
}

func (f *fakeStore) FetchAllRecords(ctx context.Context, table string) ([]Record, error) {
	return f.FetchFromAirtable(ctx, table, QueryOptions{})
}

func (f *fakeStore) IsConfigured() bool { return f.configured }

func (f *fakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type notification struct {
	Kind    NotificationKind
	Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, kind NotificationKind, message string) {
	n.mu.Lock()
	n.sent = append(n.sent, notification{Kind: kind, Message: message})
	n.mu.Unlock()
}

func (n *recordingNotifier) Sent() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

// verifierFunc adapts a function to AccessVerifier.
type verifierFunc func(ctx context.Context, code string) (*models.StudentIdentity, error)

func (f verifierFunc) VerifyAccess(ctx context.Context, code string) (*models.StudentIdentity, error) {
	return f(ctx, code)
}
