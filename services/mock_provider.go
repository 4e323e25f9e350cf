package services

import (
	"context"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"
)

// MockProvider serves the static demo dataset used whenever the store is not
// configured or could not answer. Results are filtered by exact student id and
// delivered after an artificial delay standing in for network latency.
type MockProvider struct {
	delay        time.Duration
	students     []models.StudentIdentity
	calculations []models.Calculation
	mealPlans    []models.MealPlan
	ebooks       []models.Ebook
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{
		delay:        delay,
		students:     mockStudents,
		calculations: mockCalculations,
		mealPlans:    mockMealPlans,
		ebooks:       mockEbooks,
	}
}

// wait sleeps for the configured delay; a cancelled context cuts it short.
func (m *MockProvider) wait(ctx context.Context) {
	if m.delay <= 0 {
		return
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (m *MockProvider) Calculations(ctx context.Context, studentID string) []models.Calculation {
	m.wait(ctx)
	out := []models.Calculation{}
	for _, c := range m.calculations {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockProvider) MealPlans(ctx context.Context, studentID string) []models.MealPlan {
	m.wait(ctx)
	out := []models.MealPlan{}
	for _, p := range m.mealPlans {
		if p.StudentID == studentID {
			out = append(out, cloneMealPlan(p))
		}
	}
	return out
}

func (m *MockProvider) Ebooks(ctx context.Context) []models.Ebook {
	m.wait(ctx)
	out := make([]models.Ebook, len(m.ebooks))
	copy(out, m.ebooks)
	return out
}

// StudentByCode looks a demo student up by access code.
func (m *MockProvider) StudentByCode(ctx context.Context, code string) (models.StudentIdentity, bool) {
	m.wait(ctx)
	for _, s := range m.students {
		if s.AccessCode == code {
			return s, true
		}
	}
	return models.StudentIdentity{}, false
}

// StudentName resolves a demo student's display name; no delay, it only
// prepares the meal-plan lookup.
func (m *MockProvider) StudentName(studentID string) (string, bool) {
	for _, s := range m.students {
		if s.ID == studentID {
			return s.Name, true
		}
	}
	return "", false
}

func cloneMealPlan(p models.MealPlan) models.MealPlan {
	meals := make([]models.Meal, len(p.Meals))
	for i, m := range p.Meals {
		items := make([]models.MealItem, len(m.Items))
		copy(items, m.Items)
		m.Items = items
		meals[i] = m
	}
	p.Meals = meals
	return p
}
