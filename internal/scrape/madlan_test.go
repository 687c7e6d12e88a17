package scrape

import "testing"

func TestExtractProperties(t *testing.T) {
	html := `[{"address":"הרצל 10, לוד","beds":3.5,"floor":"2","area":90,"price":1500000},` +
		`{"address":"הרצל 10, לוד","beds":3.5,"floor":"2","area":90,"price":1500000},` +
		`{"address":"ז'בוטינסקי 5, לוד","beds":4,"floor":"1","area":110,"price":0},` +
		`{"address":"ביאליק 7, לוד","beds":5,"floor":"3","area":140,"price":2300000}]`

	properties := extractProperties(html)
	if len(properties) != 2 {
		t.Fatalf("got %d properties, want 2 (duplicate and zero-price dropped): %+v", len(properties), properties)
	}

	first := properties[0]
	if first.address != "הרצל 10, לוד" {
		t.Errorf("address = %q", first.address)
	}
	if first.beds != 3.5 || first.floor != 2 || first.area != 90 || first.price != 1500000 {
		t.Errorf("attributes = %+v", first)
	}
	if properties[1].address != "ביאליק 7, לוד" {
		t.Errorf("second address = %q", properties[1].address)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{950, "950"},
		{1000, "1,000"},
		{1500000, "1,500,000"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.n); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
