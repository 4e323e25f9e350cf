package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/croissanceConsulting/coaching-sportif-tracker/config"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/rs/zerolog"
)

// cli runs the domain services without the HTTP server or the session database.
type cli struct {
	gate  *services.IdentityGate
	calcs *services.CalculationService
	plans *services.MealPlanService
}

func newCLI() (*cli, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := config.NewLogger("coachportal-cli", cfg.LogLevel)
	store := services.NewAirtableClient(cfg.AirtableURL, cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.StoreTimeout)
	return newCLIWith(store, services.NewMockProvider(cfg.MockDelay), log), nil
}

func newCLIWith(store services.RecordStore, mock *services.MockProvider, log zerolog.Logger) *cli {
	notifier := services.LogNotifier{Log: log}
	students := services.NewStudentService(store, mock, log)
	return &cli{
		gate:  services.NewIdentityGate(students, &services.MemorySessionStore{}, notifier, log),
		calcs: services.NewCalculationService(store, mock, notifier, log),
		plans: services.NewMealPlanService(store, students, mock, notifier, log),
	}
}

func (a *cli) verify(ctx context.Context, code string, w io.Writer) error {
	// same path as the HTTP login, seeded identities included
	st, err := a.gate.Login(ctx, code)
	if errors.Is(err, services.ErrInvalidAccessCode) {
		return fmt.Errorf("no student with access code %q", code)
	}
	if err != nil {
		return err
	}
	return printJSON(w, st)
}

func (a *cli) calculations(ctx context.Context, studentID string, w io.Writer) error {
	return printJSON(w, a.calcs.GetStudentCalculations(ctx, studentID))
}

func (a *cli) mealPlans(ctx context.Context, studentID string, w io.Writer) error {
	return printJSON(w, a.plans.GetStudentMealPlans(ctx, studentID))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
