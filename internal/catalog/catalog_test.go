package catalog

import (
	"testing"

	"github.com/uschan/reflecting-light/internal/domain"
)

func TestMoodCardPool(t *testing.T) {
	t.Parallel()

	if len(MoodCards) != 12 {
		t.Fatalf("len(MoodCards)=%d", len(MoodCards))
	}
	seen := map[string]bool{}
	for _, c := range MoodCards {
		if c.ID == "" || c.AbstractKey == "" || c.Label == "" || c.ImageURL == "" {
			t.Fatalf("incomplete card: %+v", c)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
		for _, r := range c.AbstractKey {
			if r > 127 {
				t.Fatalf("card %s: abstract key %q is not plain English", c.ID, c.AbstractKey)
			}
		}
	}
}

func TestSufferingOptionsCoverAllTypes(t *testing.T) {
	t.Parallel()

	if len(SufferingOptions) != len(domain.SufferingTypes) {
		t.Fatalf("len(SufferingOptions)=%d, want %d", len(SufferingOptions), len(domain.SufferingTypes))
	}
	for i, opt := range SufferingOptions {
		if opt.Value != domain.SufferingTypes[i] {
			t.Fatalf("option %d: %s, want %s", i, opt.Value, domain.SufferingTypes[i])
		}
		if opt.Label == "" {
			t.Fatalf("option %s has no label", opt.Value)
		}
	}
}

func TestCardLookups(t *testing.T) {
	t.Parallel()

	c, ok := CardByID("12")
	if !ok || c.AbstractKey != "Chaos" {
		t.Fatalf("CardByID(12) = %+v, %v", c, ok)
	}
	if ValidCardID("0") {
		t.Fatal("ValidCardID(0) = true")
	}

	got := AbstractKeys([]string{"1", "3", "nope"})
	if got != "Tangled, Fog" {
		t.Fatalf("AbstractKeys = %q", got)
	}
}
