package models

import "sort"

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Snack     MealType = "snack"
	Dinner    MealType = "dinner"
)

// display order used by the nutrition view
var mealTypeOrder = map[MealType]int{
	Breakfast: 0,
	Lunch:     1,
	Snack:     2,
	Dinner:    3,
}

// MealPlan groups the meals of one student for one date.
// Its ID is always "<studentId>-<date>".
type MealPlan struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Meals     []Meal `json:"meals"`
}

// Meal holds every item of one meal type within a plan; a plan has at most one Meal per type.
type Meal struct {
	ID    string     `json:"id"`
	Type  MealType   `json:"type"`
	Items []MealItem `json:"items"`
}

type MealItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (t MacroTotals) add(o MacroTotals) MacroTotals {
	return MacroTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}

// Totals sums the macros of every item in the meal.
func (m Meal) Totals() MacroTotals {
	var t MacroTotals
	for _, it := range m.Items {
		t = t.add(MacroTotals{Calories: it.Calories, Protein: it.Protein, Carbs: it.Carbs, Fat: it.Fat})
	}
	return t
}

// Totals is the daily total across all meals of the plan.
func (p MealPlan) Totals() MacroTotals {
	var t MacroTotals
	for _, m := range p.Meals {
		t = t.add(m.Totals())
	}
	return t
}

// SortedMeals returns a copy of the meals in display order
// (breakfast, lunch, snack, dinner). Unknown types keep their relative order at the end.
func (p MealPlan) SortedMeals() []Meal {
	out := make([]Meal, len(p.Meals))
	copy(out, p.Meals)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i].Type) < rank(out[j].Type)
	})
	return out
}

func rank(t MealType) int {
	if r, ok := mealTypeOrder[t]; ok {
		return r
	}
	return len(mealTypeOrder)
}
