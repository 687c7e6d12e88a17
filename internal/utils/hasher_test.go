package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStableID(t *testing.T) {
	a := StableID("chabad", "כותרת ראשונה")
	b := StableID("chabad", "כותרת ראשונה")
	if a != b {
		t.Errorf("same input produced different ids: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "chabad-") {
		t.Errorf("id missing prefix: %q", a)
	}
	if len(a) != len("chabad-")+8 {
		t.Errorf("id hash length wrong: %q", a)
	}
	if a == StableID("chabad", "כותרת אחרת") {
		t.Error("different inputs produced the same id")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("קצר", 10); got != "קצר" {
		t.Errorf("short string changed: %q", got)
	}

	long := strings.Repeat("אב ", 40)
	got := Truncate(long, 20)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string missing marker: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 23 {
		t.Errorf("truncated to %d runes, want at most 23", n)
	}

	// Boundary: exactly max runes is returned untouched.
	exact := strings.Repeat("א", 20)
	if got := Truncate(exact, 20); got != exact {
		t.Errorf("exact-length string changed: %q", got)
	}
}
