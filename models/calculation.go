package models

// Calculation is one BMR/BCJ and macro split computed by the coach for a student.
// All numeric fields are zero when the source record does not carry them.
type Calculation struct {
	ID                string  `json:"id"`
	StudentID         string  `json:"studentId"`
	Date              string  `json:"date"`
	BMR               float64 `json:"bmr"`
	BCJ               float64 `json:"bcj"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	ProteinKcal       float64 `json:"proteinKcal"`
	CarbsKcal         float64 `json:"carbsKcal"`
	FatKcal           float64 `json:"fatKcal"`
	ProteinPercentage float64 `json:"proteinPercentage"`
	CarbsPercentage   float64 `json:"carbsPercentage"`
	FatPercentage     float64 `json:"fatPercentage"`
	TotalGrams        float64 `json:"totalGrams"`
	TotalKcal         float64 `json:"totalKcal"`
	Objective         float64 `json:"objective"`
}
