package resolve

import (
	"errors"
	"testing"
)

func testCandidates() []Candidate {
	return []Candidate{
		{ID: "consumable_heal_small", Name: "Cloudleaf Tincture"},
		{ID: "material_cloudleaf", Name: "Cloudleaf"},
		{ID: "material_iron_ore", Name: "Iron Ore"},
		{ID: "key_anchor_dust", Name: "Anchor Dust"},
		{ID: "consumable_stamina_vial", Name: "Quicksilver Draught"},
	}
}

func TestResolve_ExactID(t *testing.T) {
	id, err := Resolve("material_iron_ore", testCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "material_iron_ore" {
		t.Errorf("id = %q", id)
	}
}

func TestResolve_ExactNameBeatsPartial(t *testing.T) {
	// "cloudleaf" is a word of "Cloudleaf Tincture" too, but the full name
	// match wins.
	id, err := Resolve("Cloudleaf", testCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "material_cloudleaf" {
		t.Errorf("id = %q, want material_cloudleaf", id)
	}
}

func TestResolve_PartialWord(t *testing.T) {
	tests := map[string]string{
		"tincture":  "consumable_heal_small",
		"ore":       "material_iron_ore",
		"draught":   "consumable_stamina_vial",
		"dust":      "key_anchor_dust",
		"iron  ore": "material_iron_ore",
	}
	for query, want := range tests {
		id, err := Resolve(query, testCandidates())
		if err != nil {
			t.Errorf("Resolve(%q): %v", query, err)
			continue
		}
		if id != want {
			t.Errorf("Resolve(%q) = %q, want %q", query, id, want)
		}
	}
}

func TestResolve_UnderscoreNormalization(t *testing.T) {
	id, err := Resolve("stamina vial", testCandidates())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "consumable_stamina_vial" {
		t.Errorf("id = %q", id)
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	_, err := Resolve("consumable", testCandidates())
	var amb *AmbiguityError
	if !errors.As(err, &amb) {
		t.Fatalf("err = %v, want AmbiguityError", err)
	}
	if len(amb.Candidates) != 2 {
		t.Errorf("candidates = %v", amb.Candidates)
	}
	want := `which consumable? (Cloudleaf Tincture, Quicksilver Draught)`
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestResolve_NotFound(t *testing.T) {
	for _, query := range []string{"sword", "", "   ", "ore tincture"} {
		_, err := Resolve(query, testCandidates())
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("Resolve(%q) err = %v, want NotFoundError", query, err)
		}
	}
}

func TestResolve_NoCandidates(t *testing.T) {
	if _, err := Resolve("ore", nil); err == nil {
		t.Error("expected error with no candidates")
	}
}
