package services

import "github.com/croissanceConsulting/coaching-sportif-tracker/models"

const (
	felineID  = "rech0KgjCrK24UrBH"
	camilleID = "recDemoCamille001"
)

var mockStudents = []models.StudentIdentity{
	{ID: felineID, Name: "Féline Faure", AccessCode: felineID, Email: "feline.faure@example.com"},
	{ID: camilleID, Name: "Camille Martin", AccessCode: "DEMO-CAMILLE", Email: "camille.martin@example.com"},
}

var mockCalculations = []models.Calculation{
	{
		ID: "calc-feline-1", StudentID: felineID, Date: "2024-03-04",
		BMR: 1380, BCJ: 2050,
		Protein: 120, Carbs: 230, Fat: 70,
		ProteinKcal: 480, CarbsKcal: 920, FatKcal: 630,
		ProteinPercentage: 23, CarbsPercentage: 46, FatPercentage: 31,
		TotalGrams: 420, TotalKcal: 2030, Objective: 1850,
	},
	{
		ID: "calc-feline-2", StudentID: felineID, Date: "2024-04-01",
		BMR: 1375, BCJ: 2000,
		Protein: 125, Carbs: 210, Fat: 65,
		ProteinKcal: 500, CarbsKcal: 840, FatKcal: 585,
		ProteinPercentage: 26, CarbsPercentage: 44, FatPercentage: 30,
		TotalGrams: 400, TotalKcal: 1925, Objective: 1800,
	},
	{
		ID: "calc-camille-1", StudentID: camilleID, Date: "2024-03-11",
		BMR: 1620, BCJ: 2550,
		Protein: 150, Carbs: 300, Fat: 80,
		ProteinKcal: 600, CarbsKcal: 1200, FatKcal: 720,
		ProteinPercentage: 24, CarbsPercentage: 48, FatPercentage: 28,
		TotalGrams: 530, TotalKcal: 2520, Objective: 2700,
	},
}

var mockMealPlans = []models.MealPlan{
	{
		ID: felineID + "-2024-04-01", StudentID: felineID, Date: "2024-04-01",
		Meals: []models.Meal{
			{
				ID: felineID + "-2024-04-01-breakfast", Type: models.Breakfast,
				Items: []models.MealItem{
					{ID: "mock-item-1", Name: "Flocons d'avoine", Quantity: "60 g", Calories: 230, Protein: 8, Carbs: 40, Fat: 4},
					{ID: "mock-item-2", Name: "Skyr nature", Quantity: "150 g", Calories: 95, Protein: 16, Carbs: 6, Fat: 0.3},
				},
			},
			{
				ID: felineID + "-2024-04-01-lunch", Type: models.Lunch,
				Items: []models.MealItem{
					{ID: "mock-item-3", Name: "Riz basmati", Quantity: "80 g cru", Calories: 280, Protein: 6, Carbs: 62, Fat: 0.6},
					{ID: "mock-item-4", Name: "Blanc de poulet", Quantity: "130 g", Calories: 150, Protein: 30, Carbs: 0, Fat: 2.5},
				},
			},
			{
				ID: felineID + "-2024-04-01-dinner", Type: models.Dinner,
				Items: []models.MealItem{
					{ID: "mock-item-5", Name: "Saumon", Quantity: "120 g", Calories: 250, Protein: 24, Carbs: 0, Fat: 16},
				},
			},
		},
	},
	{
		ID: camilleID + "-2024-03-11", StudentID: camilleID, Date: "2024-03-11",
		Meals: []models.Meal{
			{
				ID: camilleID + "-2024-03-11-snack", Type: models.Snack,
				Items: []models.MealItem{
					{ID: "mock-item-6", Name: "Banane", Quantity: "1", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
				},
			},
		},
	},
}

var mockEbooks = []models.Ebook{
	{
		ID: "mock-ebook-1", Titre: "Bien démarrer sa préparation",
		SousTitre:   "Les bases de l'entraînement",
		Description: "Échauffement, progression des charges et récupération.",
		URLEbook:    "https://example.com/ebooks/bien-demarrer.pdf",
	},
	{
		ID: "mock-ebook-2", Titre: "Nutrition du sportif",
		Description: "Comprendre ses besoins caloriques et la répartition des macronutriments.",
		URLEbook:    "https://example.com/ebooks/nutrition-du-sportif.pdf",
	},
	{
		ID: "mock-ebook-3", Titre: "Recettes express",
	},
}
