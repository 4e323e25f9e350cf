package controllers

import (
	"net/http"

	"github.com/croissanceConsulting/coaching-sportif-tracker/middlewares"
	"github.com/croissanceConsulting/coaching-sportif-tracker/models"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Calculations *services.CalculationService
	MealPlans    *services.MealPlanService
	Ebooks       *services.EbookService
}

func NewStudentController(calcs *services.CalculationService, plans *services.MealPlanService, ebooks *services.EbookService) *StudentController {
	return &StudentController{Calculations: calcs, MealPlans: plans, Ebooks: ebooks}
}

// GET /student/profile
func (sc *StudentController) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, middlewares.CurrentStudent(c))
}

// GET /student/calculations
func (sc *StudentController) ListCalculations(c *gin.Context) {
	st := middlewares.CurrentStudent(c)
	calcs := sc.Calculations.GetStudentCalculations(c.Request.Context(), st.ID)
	if c.Request.Context().Err() != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"calculations": calcs})
}

type mealView struct {
	models.Meal
	Totals models.MacroTotals `json:"totals"`
}

type mealPlanView struct {
	ID        string             `json:"id"`
	StudentID string             `json:"studentId"`
	Date      string             `json:"date"`
	Meals     []mealView         `json:"meals"`
	Totals    models.MacroTotals `json:"totals"`
}

func newMealPlanView(p models.MealPlan) mealPlanView {
	sorted := p.SortedMeals()
	meals := make([]mealView, 0, len(sorted))
	for _, m := range sorted {
		meals = append(meals, mealView{Meal: m, Totals: m.Totals()})
	}
	return mealPlanView{ID: p.ID, StudentID: p.StudentID, Date: p.Date, Meals: meals, Totals: p.Totals()}
}

// GET /student/meal-plans
func (sc *StudentController) ListMealPlans(c *gin.Context) {
	st := middlewares.CurrentStudent(c)
	plans := sc.MealPlans.GetStudentMealPlans(c.Request.Context(), st.ID)
	if c.Request.Context().Err() != nil {
		return
	}

	views := make([]mealPlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, newMealPlanView(p))
	}
	c.JSON(http.StatusOK, gin.H{"mealPlans": views})
}

// GET /student/dashboard
func (sc *StudentController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	st := middlewares.CurrentStudent(c)

	calcs := sc.Calculations.GetStudentCalculations(ctx, st.ID)
	plans := sc.MealPlans.GetStudentMealPlans(ctx, st.ID)
	books := sc.Ebooks.GetPublishedEbooks(ctx)
	if ctx.Err() != nil {
		return
	}

	var latest *models.Calculation
	for i := range calcs {
		if latest == nil || calcs[i].Date > latest.Date {
			latest = &calcs[i]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"student":           st,
		"latestCalculation": latest,
		"calculationCount":  len(calcs),
		"mealPlanCount":     len(plans),
		"ebookCount":        len(books),
	})
}
