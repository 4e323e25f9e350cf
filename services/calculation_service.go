package services

import (
	"context"
	"strings"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
)

const (
	calculationsTable  = "BCJ"
	domainCalculations = "calculations"
)

type CalculationService struct {
	store    RecordStore
	mock     *MockProvider
	notifier Notifier
	log      zerolog.Logger
}

func NewCalculationService(store RecordStore, mock *MockProvider, notifier Notifier, log zerolog.Logger) *CalculationService {
	return &CalculationService{
		store:    store,
		mock:     mock,
		notifier: notifier,
		log:      log.With().Str("domain", domainCalculations).Logger(),
	}
}

// GetStudentCalculations returns the student's calculation records. The BCJ
// link column is typed inconsistently upstream, so several query formulations
// are tried in turn; when none yields records the demo dataset is returned.
func (s *CalculationService) GetStudentCalculations(ctx context.Context, studentID string) []models.Calculation {
	if !s.store.IsConfigured() {
		s.log.Debug().Msg("Airtable not configured, using mock data")
		fallbackTotal.WithLabelValues(domainCalculations, reasonUnconfigured).Inc()
		return s.mock.Calculations(ctx, studentID)
	}
	if studentID == "" {
		return []models.Calculation{}
	}

	log := s.log.With().Str("student_id", studentID).Logger()
	recs, resolved, err := FirstNonEmpty(ctx, log, s.strategies(studentID)...)
	if err != nil {
		return s.fallback(ctx, log, studentID, err)
	}

	strategyResolvedTotal.WithLabelValues(domainCalculations, resolved.Strategy).Inc()
	log.Info().Str("strategy", resolved.Strategy).Int("records", len(recs)).Msg("calculations fetched")
	return NormalizeCalculations(recs, studentID)
}

func (s *CalculationService) strategies(studentID string) []Strategy[Record] {
	list := []Strategy[Record]{
		{
			Name: "fetch all, filter client-side",
			Run: func(ctx context.Context) ([]Record, error) {
				all, err := s.store.FetchAllRecords(ctx, calculationsTable)
				if err != nil {
					return nil, err
				}
				var mine []Record
				for _, r := range all {
					if calculationBelongsTo(r, studentID) {
						mine = append(mine, r)
					}
				}
				return mine, nil
			},
		},
		s.formulaStrategy("find formula", findInField(studentID, "IDU Élève")),
	}
	return append(list,
		s.formulaStrategy("record id formula", recordIDEquals(studentID)),
		s.formulaStrategy("search formula", searchEither(studentID, "Élève", "IDU Élève")),
		s.formulaStrategy("equals formula", equalsEither(studentID, "IDU Élève", "Élève")),
	)
}

func (s *CalculationService) formulaStrategy(name, formula string) Strategy[Record] {
	return Strategy[Record]{
		Name: name,
		Run: func(ctx context.Context) ([]Record, error) {
			return s.store.FetchFromAirtable(ctx, calculationsTable, QueryOptions{FilterByFormula: EncodeFormula(formula)})
		},
	}
}

func (s *CalculationService) fallback(ctx context.Context, log zerolog.Logger, studentID string, err error) []models.Calculation {
	reason := fallbackReason(err)
	fallbackTotal.WithLabelValues(domainCalculations, reason).Inc()
	log.Warn().Err(err).Str("reason", reason).Msg("all strategies failed, falling back to mock data")

	if reason == reasonFailed && ctx.Err() == nil {
		s.notifier.Notify(ctx, NotifyError, "Erreur lors de la récupération des calculs")
	}
	return s.mock.Calculations(ctx, studentID)
}

// calculationBelongsTo checks every shape the student link takes in BCJ rows:
// linked-record id lists, a plain StudentId, or text columns.
func calculationBelongsTo(r Record, studentID string) bool {
	if listContains(r["Élève"], studentID) || listContains(r["IDU Élève"], studentID) {
		return true
	}
	if v, ok := r["StudentId"].(string); ok && v == studentID {
		return true
	}
	if v, ok := r["Élève"].(string); ok && strings.Contains(v, studentID) {
		return true
	}
	if v, ok := r["IDU Élève"].(string); ok && v == studentID {
		return true
	}
	return false
}
