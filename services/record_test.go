package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstPresent(t *testing.T) {
	r := Record{"A": "", "B": 0.0, "C": "value", "D": "later"}

	v, ok := FirstPresent(r, "missing", "A", "B", "C", "D")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = FirstPresent(r, "A", "B")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		keys []string
		want float64
	}{
		{"first key wins", Record{"BMR": 1500.0, "BMR (kcal)": 1400.0}, []string{"BMR", "BMR (kcal)"}, 1500},
		{"zero falls through", Record{"BMR": 0.0, "BMR (kcal)": 1400.0}, []string{"BMR", "BMR (kcal)"}, 1400},
		{"numeric string", Record{"Protein": "120.5"}, []string{"Protein"}, 120.5},
		{"lookup array", Record{"BCJ": []any{2050.0}}, []string{"BCJ"}, 2050},
		{"json number", Record{"Fat": json.Number("70")}, []string{"Fat"}, 70},
		{"zero text resolves", Record{"BMR": "0", "BMR (kcal)": 1400.0}, []string{"BMR", "BMR (kcal)"}, 0},
		{"non-numeric text resolves to zero", Record{"Carbs": "n/a", "Glucides (g)": 230.0}, []string{"Carbs", "Glucides (g)"}, 0},
		{"empty text falls through", Record{"Carbs": "", "Glucides (g)": 230.0}, []string{"Carbs", "Glucides (g)"}, 230},
		{"empty lookup array falls through", Record{"BCJ": []any{}, "BCJ (kcal)": 2000.0}, []string{"BCJ", "BCJ (kcal)"}, 2000},
		{"absent", Record{}, []string{"BMR"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.rec, tt.keys...))
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		keys []string
		want string
	}{
		{"first truthy", Record{"Nom": "", "Name": "Féline"}, []string{"Nom", "Name"}, "Féline"},
		{"linked record list", Record{"Élève": []any{"rec1", "rec2"}}, []string{"Élève"}, "rec1"},
		{"number formatted", Record{"Date": 2024.0}, []string{"Date"}, "2024"},
		{"absent", Record{}, []string{"Date"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.rec, tt.keys...))
		})
	}
}

func TestListContains(t *testing.T) {
	assert.True(t, listContains([]any{"a", "b"}, "b"))
	assert.True(t, listContains([]string{"a"}, "a"))
	assert.False(t, listContains("a", "a"))
	assert.False(t, listContains([]any{1.0}, "1"))
}
