package services

import (
	"sort"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/models"
)

// Candidate source keys per output field, tried in order. The upstream base
// names the same column differently depending on the table and its age.
var calculationFields = struct {
	StudentID, Date                                   []string
	BMR, BCJ, Protein, Carbs, Fat                     []string
	ProteinKcal, CarbsKcal, FatKcal                   []string
	ProteinPercentage, CarbsPercentage, FatPercentage []string
	TotalGrams, TotalKcal, Objective                  []string
}{
	StudentID:         []string{"StudentId", "IDU Élève", "Élève"},
	Date:              []string{"Date", "Semaine"},
	BMR:               []string{"BMR", "BMR (kcal)"},
	BCJ:               []string{"BCJ", "BCJ (kcal)"},
	Protein:           []string{"Protein", "Protéines (g)"},
	Carbs:             []string{"Carbs", "Glucides (g)"},
	Fat:               []string{"Fat", "Lipides (g)"},
	ProteinKcal:       []string{"Protéines (kcal)"},
	CarbsKcal:         []string{"Glucides (kcal)"},
	FatKcal:           []string{"Lipides (kcal)"},
	ProteinPercentage: []string{"Protéines (%)"},
	CarbsPercentage:   []string{"Glucides (%)"},
	FatPercentage:     []string{"Lipides (%)"},
	TotalGrams:        []string{"Total (g)"},
	TotalKcal:         []string{"Total (kcal)"},
	Objective:         []string{"BCJ / Obj (kcal)"},
}

var mealRowFields = struct {
	Date, MealType, Name, Quantity  []string
	Protein, Carbs, Fat             []string
	ProteinKcal, CarbsKcal, FatKcal []string
}{
	Date:        []string{"Semaine"},
	MealType:    []string{"Repas"},
	Name:        []string{"Aliment"},
	Quantity:    []string{"Quantité"},
	Protein:     []string{"Protéines (g)"},
	Carbs:       []string{"Glucides (g)"},
	Fat:         []string{"Lipides (g)"},
	ProteinKcal: []string{"Protéines (kcal)"},
	CarbsKcal:   []string{"Glucides (kcal)"},
	FatKcal:     []string{"Lipides (kcal)"},
}

var studentFields = struct {
	Name, Email, Code []string
}{
	Name:  []string{"Nom", "Name", "Nom complet"},
	Email: []string{"Email", "E-mail", "Mail"},
	Code:  []string{"code", "Code"},
}

// eBooks come from a single, stable table shape.
var ebookFields = struct {
	Titre, SousTitre, Description, URL, Published []string
}{
	Titre:       []string{"Titre"},
	SousTitre:   []string{"Sous-titre"},
	Description: []string{"Description"},
	URL:         []string{"URL eBook"},
	Published:   []string{"Publié"},
}

var mealTypeLabels = map[string]models.MealType{
	"Petit Déjeuner":         models.Breakfast,
	"Déjeuner":               models.Lunch,
	"Dîner":                  models.Dinner,
	"Collation après Séance": models.Snack,
}

const dateLayout = "2006-01-02"

// NormalizeCalculation maps a raw BCJ row. studentID is used when the row
// carries no usable student reference.
func NormalizeCalculation(r Record, studentID string) models.Calculation {
	f := calculationFields
	sid := String(r, f.StudentID...)
	if sid == "" {
		sid = studentID
	}
	return models.Calculation{
		ID:                r.ID(),
		StudentID:         sid,
		Date:              String(r, f.Date...),
		BMR:               Number(r, f.BMR...),
		BCJ:               Number(r, f.BCJ...),
		Protein:           Number(r, f.Protein...),
		Carbs:             Number(r, f.Carbs...),
		Fat:               Number(r, f.Fat...),
		ProteinKcal:       Number(r, f.ProteinKcal...),
		CarbsKcal:         Number(r, f.CarbsKcal...),
		FatKcal:           Number(r, f.FatKcal...),
		ProteinPercentage: Number(r, f.ProteinPercentage...),
		CarbsPercentage:   Number(r, f.CarbsPercentage...),
		FatPercentage:     Number(r, f.FatPercentage...),
		TotalGrams:        Number(r, f.TotalGrams...),
		TotalKcal:         Number(r, f.TotalKcal...),
		Objective:         Number(r, f.Objective...),
	}
}

func NormalizeCalculations(rows []Record, studentID string) []models.Calculation {
	out := make([]models.Calculation, 0, len(rows))
	for _, r := range rows {
		out = append(out, NormalizeCalculation(r, studentID))
	}
	return out
}

// MapMealType translates the coach's meal labels; anything unknown is a snack.
func MapMealType(label string) models.MealType {
	if t, ok := mealTypeLabels[label]; ok {
		return t
	}
	return models.Snack
}

// NormalizeMealRow maps one "Plan Alimentaire" row to the item it describes and
// the (date, meal type) it belongs to. Calories are the sum of the three macro
// calorie columns, never a stored total.
func NormalizeMealRow(r Record, today string) (date string, mealType models.MealType, item models.MealItem) {
	f := mealRowFields
	date = String(r, f.Date...)
	if date == "" {
		date = today
	}
	mealType = MapMealType(String(r, f.MealType...))
	item = models.MealItem{
		ID:       r.ID(),
		Name:     String(r, f.Name...),
		Quantity: String(r, f.Quantity...),
		Calories: Number(r, f.ProteinKcal...) + Number(r, f.CarbsKcal...) + Number(r, f.FatKcal...),
		Protein:  Number(r, f.Protein...),
		Carbs:    Number(r, f.Carbs...),
		Fat:      Number(r, f.Fat...),
	}
	return date, mealType, item
}

// AggregateMealPlans folds flat meal rows into plans, one per date and one meal
// per type within a plan, creating both lazily. Items keep encounter order;
// plans are returned newest first.
func AggregateMealPlans(studentID string, rows []Record, today string) []models.MealPlan {
	var plans []*models.MealPlan
	byID := make(map[string]*models.MealPlan)

	for _, r := range rows {
		date, mealType, item := NormalizeMealRow(r, today)
		planID := studentID + "-" + date

		plan, ok := byID[planID]
		if !ok {
			plan = &models.MealPlan{ID: planID, StudentID: studentID, Date: date, Meals: []models.Meal{}}
			byID[planID] = plan
			plans = append(plans, plan)
		}

		idx := -1
		for i := range plan.Meals {
			if plan.Meals[i].Type == mealType {
				idx = i
				break
			}
		}
		if idx < 0 {
			plan.Meals = append(plan.Meals, models.Meal{
				ID:    planID + "-" + string(mealType),
				Type:  mealType,
				Items: []models.MealItem{},
			})
			idx = len(plan.Meals) - 1
		}
		plan.Meals[idx].Items = append(plan.Meals[idx].Items, item)
	}

	out := make([]models.MealPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, *p)
	}
	sortPlansNewestFirst(out)
	return out
}

func sortPlansNewestFirst(plans []models.MealPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		return parsePlanDate(plans[i].Date).After(parsePlanDate(plans[j].Date))
	})
}

// unparseable dates sort last
func parsePlanDate(s string) time.Time {
	for _, layout := range []string{dateLayout, time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func NormalizeStudent(r Record, accessCode string) models.StudentIdentity {
	return models.StudentIdentity{
		ID:         r.ID(),
		Name:       String(r, studentFields.Name...),
		AccessCode: accessCode,
		Email:      String(r, studentFields.Email...),
	}
}

func NormalizeEbook(r Record) models.Ebook {
	return models.Ebook{
		ID:          r.ID(),
		Titre:       String(r, ebookFields.Titre...),
		SousTitre:   String(r, ebookFields.SousTitre...),
		Description: String(r, ebookFields.Description...),
		URLEbook:    String(r, ebookFields.URL...),
	}
}

// ebookPublished treats a missing flag as published; only an explicit false hides a book.
func ebookPublished(r Record) bool {
	for _, k := range ebookFields.Published {
		if v, ok := r[k]; ok {
			if b, isBool := v.(bool); isBool {
				return b
			}
		}
	}
	return true
}
