// ABOUTME: Tests for slug identity normalization
// ABOUTME: Verifies determinism and collapse of name variants to one id

package ident

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Afterlife", "afterlife"},
		{"spaces", "Night City", "night_city"},
		{"punctuation run", "Rogue!! -- Amendiares", "rogue_amendiares"},
		{"leading and trailing junk", "  rogue  ", "rogue"},
		{"all caps", "ROGUE!!", "rogue"},
		{"digits kept", "Sector 9", "sector_9"},
		{"empty", "", ""},
		{"only separators", "!!! ---", ""},
		{"unicode treated as separator", "Café Añejo", "caf_a_ejo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug_VariantsCollapse(t *testing.T) {
	variants := []string{"Rogue", "ROGUE!!", "  rogue  ", "rogue"}

	want := Slug(variants[0])
	for _, v := range variants {
		if got := Slug(v); got != want {
			t.Errorf("Slug(%q) = %q, want %q (variants must share one id)", v, got, want)
		}
	}
}

func TestSlug_Idempotent(t *testing.T) {
	inputs := []string{"Night City", "Maelstrom", "the-afterlife"}
	for _, in := range inputs {
		once := Slug(in)
		if twice := Slug(once); twice != once {
			t.Errorf("Slug(Slug(%q)) = %q, want %q", in, twice, once)
		}
	}
}
