package services

import (
	"context"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"

	"github.com/rs/zerolog"
)

const (
	mealPlansTable  = "Plan Alimentaire"
	domainMealPlans = "meal_plans"
)

// MealPlanService rebuilds meal plans from the flat "Plan Alimentaire" rows.
// Those rows link to the student by name, so the student's display name is
// resolved before querying.
type MealPlanService struct {
	store    RecordStore
	students *StudentService
	mock     *MockProvider
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewMealPlanService(store RecordStore, students *StudentService, mock *MockProvider, notifier Notifier, log zerolog.Logger) *MealPlanService {
	return &MealPlanService{
		store:    store,
		students: students,
		mock:     mock,
		notifier: notifier,
		log:      log.With().Str("domain", domainMealPlans).Logger(),
		now:      time.Now,
	}
}

// GetStudentMealPlans returns the student's plans, newest first.
func (s *MealPlanService) GetStudentMealPlans(ctx context.Context, studentID string) []models.MealPlan {
	if !s.store.IsConfigured() {
		fallbackTotal.WithLabelValues(domainMealPlans, reasonUnconfigured).Inc()
		return s.mock.MealPlans(ctx, studentID)
	}
	if studentID == "" {
		return []models.MealPlan{}
	}

	name := s.students.ResolveStudentName(ctx, studentID)
	log := s.log.With().Str("student_id", studentID).Str("student_name", name).Logger()

	rows, resolved, err := FirstNonEmpty(ctx, log, s.strategies(studentID, name)...)
	if err != nil {
		reason := fallbackReason(err)
		fallbackTotal.WithLabelValues(domainMealPlans, reason).Inc()
		log.Warn().Err(err).Str("reason", reason).Msg("all strategies failed, falling back to mock data")
		if reason == reasonFailed && ctx.Err() == nil {
			s.notifier.Notify(ctx, NotifyError, "Erreur lors de la récupération des plans alimentaires")
		}
		return s.mock.MealPlans(ctx, studentID)
	}

	strategyResolvedTotal.WithLabelValues(domainMealPlans, resolved.Strategy).Inc()
	log.Info().Str("strategy", resolved.Strategy).Int("rows", len(rows)).Msg("meal plan rows fetched")
	return AggregateMealPlans(studentID, rows, s.now().Format(dateLayout))
}

func (s *MealPlanService) strategies(studentID, name string) []Strategy[Record] {
	return []Strategy[Record]{
		{
			Name: "fetch all, filter client-side",
			Run: func(ctx context.Context) ([]Record, error) {
				all, err := s.store.FetchAllRecords(ctx, mealPlansTable)
				if err != nil {
					return nil, err
				}
				var mine []Record
				for _, r := range all {
					if mealRowBelongsTo(r, studentID, name) {
						mine = append(mine, r)
					}
				}
				return mine, nil
			},
		},
		s.formulaStrategy("name formula", fieldEquals("Élève", name)),
		s.formulaStrategy("find name formula", findInField(name, "Élève")),
	}
}

func (s *MealPlanService) formulaStrategy(name, formula string) Strategy[Record] {
	return Strategy[Record]{
		Name: name,
		Run: func(ctx context.Context) ([]Record, error) {
			return s.store.FetchFromAirtable(ctx, mealPlansTable, QueryOptions{FilterByFormula: EncodeFormula(formula)})
		},
	}
}

// mealRowBelongsTo matches the Élève link either as a linked-record list
// (ids, or names for lookup columns) or as plain text equal to the name.
func mealRowBelongsTo(r Record, studentID, name string) bool {
	v := r["Élève"]
	if listContains(v, studentID) || (name != "" && listContains(v, name)) {
		return true
	}
	if text, ok := v.(string); ok && text != "" {
		return text == name || text == studentID
	}
	return false
}
