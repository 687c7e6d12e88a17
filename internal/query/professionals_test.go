package query

import (
	"reflect"
	"testing"

	"github.com/lodnet/luach/internal/models"
)

func sampleProfessionals() []models.Professional {
	return []models.Professional{
		{ID: "professional-1", Name: "יוסי כהן", City: "לוד", Profession: "חשמלאי, מזגנים"},
		{ID: "professional-2", Name: "רחל לוי", City: "לוד ", Profession: "אינסטלציה"},
		{ID: "professional-3", Name: "דוד לוי", City: "רמלה", Profession: "חשמלאי"},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`נדל"ן`, "נדלן"},
		{"נדל״ן", "נדלן"},
		{"  Tel   Aviv ", "tel aviv"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitProfessions(t *testing.T) {
	got := SplitProfessions("חשמלאי, מזגנים ,  ")
	want := []string{"חשמלאי", "מזגנים"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitProfessions = %v, want %v", got, want)
	}
	if got := SplitProfessions(""); got != nil {
		t.Errorf("SplitProfessions(\"\") = %v, want nil", got)
	}
}

func TestFilterProfessionals(t *testing.T) {
	items := sampleProfessionals()

	// Trailing whitespace in the stored city still matches.
	got := FilterProfessionals(items, "לוד", "")
	if len(got) != 2 {
		t.Errorf("city filter: got %d, want 2", len(got))
	}

	// A single specialty matches within a comma-separated field.
	got = FilterProfessionals(items, "", "מזגנים")
	if len(got) != 1 || got[0].ID != "professional-1" {
		t.Errorf("profession filter: got %+v", got)
	}

	got = FilterProfessionals(items, "רמלה", "חשמלאי")
	if len(got) != 1 || got[0].ID != "professional-3" {
		t.Errorf("combined filter: got %+v", got)
	}

	if got := FilterProfessionals(items, "חיפה", ""); len(got) != 0 {
		t.Errorf("no match: got %d, want 0", len(got))
	}
}

func TestProfessionalCities(t *testing.T) {
	// The two spellings of לוד collapse to one representative.
	got := ProfessionalCities(sampleProfessionals())
	want := []string{"לוד", "רמלה"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProfessionalCities = %v, want %v", got, want)
	}
}

func TestProfessions(t *testing.T) {
	got := Professions(sampleProfessionals())
	want := []string{"אינסטלציה", "חשמלאי", "מזגנים"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Professions = %v, want %v", got, want)
	}
}
