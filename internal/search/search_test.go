package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pawpal/internal/catalog"
)

func testCatalog() []catalog.Pet {
	return []catalog.Pet{
		{
			ID: "1", Name: "Bella", Breed: "Golden Retriever",
			Size: catalog.SizeMedium, Personality: []string{"Friendly", "Active", "Smart"},
		},
		{
			ID: "2", Name: "Mochi", Breed: "British Shorthair",
			Size: catalog.SizeSmall, Personality: []string{"Quiet", "Independent", "Cuddly"},
		},
	}
}

func names(pets []catalog.Pet) []string {
	out := make([]string, len(pets))
	for i, p := range pets {
		out[i] = p.Name
	}
	return out
}

func TestFilterIsPure(t *testing.T) {
	pets := testCatalog()
	q := Query{FreeText: "o", Personalities: []string{"Quiet"}}
	first := Filter(pets, q)
	second := Filter(pets, q)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("filter not deterministic (-first +second):\n%s", diff)
	}
}

func TestFilterBySize(t *testing.T) {
	small := catalog.SizeSmall
	got := Filter(testCatalog(), Query{Size: &small})
	if diff := cmp.Diff([]string{"Mochi"}, names(got)); diff != "" {
		t.Fatalf("size filter mismatch:\n%s", diff)
	}
}

func TestFilterByFreeText(t *testing.T) {
	// "mo" matches the name Mochi but not the breed British Shorthair;
	// Bella/Golden Retriever matches neither.
	got := Filter(testCatalog(), Query{FreeText: "mo"})
	if diff := cmp.Diff([]string{"Mochi"}, names(got)); diff != "" {
		t.Fatalf("free text filter mismatch:\n%s", diff)
	}

	if got := Filter(testCatalog(), Query{FreeText: ""}); len(got) != 2 {
		t.Fatalf("empty free text should match all pets, got %d", len(got))
	}

	// Case-insensitive against breed too.
	got = Filter(testCatalog(), Query{FreeText: "SHORTHAIR"})
	if diff := cmp.Diff([]string{"Mochi"}, names(got)); diff != "" {
		t.Fatalf("breed match mismatch:\n%s", diff)
	}
}

func TestFilterPersonalityANDSemantics(t *testing.T) {
	got := Filter(testCatalog(), Query{Personalities: []string{"Friendly", "Smart"}})
	if diff := cmp.Diff([]string{"Bella"}, names(got)); diff != "" {
		t.Fatalf("AND semantics mismatch:\n%s", diff)
	}

	// A pet carrying only one of the two requested tags must not match.
	pets := []catalog.Pet{{ID: "x", Name: "Rex", Personality: []string{"Friendly"}}}
	if got := Filter(pets, Query{Personalities: []string{"Friendly", "Smart"}}); len(got) != 0 {
		t.Fatalf("expected no match for partial tag set, got %v", names(got))
	}
}

func TestFilterDefensiveFields(t *testing.T) {
	pets := []catalog.Pet{
		{ID: "1"}, // no name, breed, or personality
		{ID: "2", Name: "Mochi", Personality: nil},
	}

	// Must not panic, and a nil personality list only matches the
	// empty-constraint case.
	if got := Filter(pets, Query{}); len(got) != 2 {
		t.Fatalf("empty query should match all, got %d", len(got))
	}
	if got := Filter(pets, Query{Personalities: []string{"Friendly"}}); len(got) != 0 {
		t.Fatalf("nil personality should not satisfy a tag constraint, got %d", len(got))
	}
	if got := Filter(pets, Query{FreeText: "mochi"}); len(got) != 1 {
		t.Fatalf("expected 1 match on name, got %d", len(got))
	}
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	pets := []catalog.Pet{
		{ID: "1", Name: "Ada"},
		{ID: "2", Name: "Bo"},
		{ID: "3", Name: "Ace"},
	}
	got := Filter(pets, Query{FreeText: "a"})
	if diff := cmp.Diff([]string{"Ada", "Ace"}, names(got)); diff != "" {
		t.Fatalf("order not preserved:\n%s", diff)
	}
}

func TestMatchCategoryHeuristic(t *testing.T) {
	cases := []struct {
		breed string
		cat   Category
		want  bool
	}{
		{"Golden Retriever", CategoryDogs, true},
		{"French Bulldog", CategoryDogs, true},
		{"Husky Mix", CategoryDogs, true},
		{"British Shorthair", CategoryDogs, false},
		{"British Shorthair", CategoryCats, true},
		{"Siamese", CategoryCats, true},
		{"Golden Retriever", CategoryCats, false},
		{"Parakeet", CategoryAll, true},
		// Birds/Small pass everything through; the classifier only
		// understands dog and cat breed keywords.
		{"Golden Retriever", CategoryBirds, true},
		{"British Shorthair", CategorySmall, true},
		{"", CategoryDogs, false},
	}
	for _, tc := range cases {
		pet := catalog.Pet{Breed: tc.breed}
		if got := MatchCategory(pet, tc.cat); got != tc.want {
			t.Errorf("MatchCategory(%q, %s) = %v, want %v", tc.breed, tc.cat, got, tc.want)
		}
	}
}

func TestSeedScenario(t *testing.T) {
	pets := catalog.SeedPets()

	small := catalog.SizeSmall
	got := Filter(pets, Query{Size: &small})
	if len(got) == 0 || got[0].Name != "Mochi" {
		t.Fatalf("expected Mochi first among small pets, got %v", names(got))
	}

	got = Filter(pets, Query{Personalities: []string{"Friendly", "Smart"}})
	if diff := cmp.Diff([]string{"Bella"}, names(got)); diff != "" {
		t.Fatalf("seed personality scenario mismatch:\n%s", diff)
	}
}
