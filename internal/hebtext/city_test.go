package hebtext

import "testing"

func TestDetectCity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"simple match", "דירת 3 חדרים להשכרה בלוד", "לוד"},
		{"compound name wins over its prefix", "למכירה דירה במודיעין עילית ליד הפארק", "מודיעין עילית"},
		{"first contained city", "מעבר מירושלים לרמלה", "ירושלים"},
		{"no city", "דרוש עובד למשרה מלאה", ""},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCity(tt.text); got != tt.want {
				t.Errorf("DetectCity(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsApartmentCategory(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{"דירות להשכרה", true},
		{"דירות למכירה", true},
		{"דירות", true},
		{"נדל״ן בלוד", true},
		{"נדל\"ן", true},
		{"להשכרה", true}, // contained in a category label
		{"חדשות חב״ד", false},
		{"דרושים", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsApartmentCategory(tt.topic); got != tt.want {
			t.Errorf("IsApartmentCategory(%q) = %v, want %v", tt.topic, got, tt.want)
		}
	}
}
