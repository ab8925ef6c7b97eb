// Package search implements the catalog filter engine. Filtering is a pure
// function of (catalog snapshot, query): no hidden state, safe to re-run on
// every keystroke.
package search

import (
	"strings"

	"pawpal/internal/catalog"
	"pawpal/internal/logging"
)

// Category is a coarse home-page facet. It is a heuristic keyword classifier
// over breed text, not a real taxonomy field; breeds outside the keyword
// lists simply never match the Dogs/Cats facets.
type Category string

const (
	CategoryAll   Category = "All"
	CategoryDogs  Category = "Dogs"
	CategoryCats  Category = "Cats"
	CategoryBirds Category = "Birds"
	CategorySmall Category = "Small"
)

// Categories lists the home-page facets in display order.
func Categories() []Category {
	return []Category{CategoryAll, CategoryDogs, CategoryCats, CategoryBirds, CategorySmall}
}

var (
	dogKeywords = []string{"retriever", "bulldog", "husky"}
	catKeywords = []string{"shorthair", "siamese"}
)

// Query is a free-text plus structured-facet search. Zero value matches
// everything.
type Query struct {
	FreeText      string
	Size          *catalog.Size // nil = no constraint
	Personalities []string      // empty = no constraint; AND semantics
	Category      Category      // empty = All
}

// Filter returns the pets matching q, preserving catalog order (stable
// filter, not a re-rank). Partially populated pets degrade to non-matches on
// the facets they lack rather than failing the whole pass.
func Filter(pets []catalog.Pet, q Query) []catalog.Pet {
	needle := strings.ToLower(strings.TrimSpace(q.FreeText))

	out := make([]catalog.Pet, 0, len(pets))
	for _, pet := range pets {
		if !matchText(pet, needle) {
			continue
		}
		if q.Size != nil && pet.Size != *q.Size {
			continue
		}
		if !matchPersonalities(pet.Personality, q.Personalities) {
			continue
		}
		if !MatchCategory(pet, q.Category) {
			continue
		}
		out = append(out, pet)
	}
	logging.Search("filter text=%q size=%v tags=%d cat=%s -> %d/%d",
		q.FreeText, q.Size, len(q.Personalities), q.Category, len(out), len(pets))
	return out
}

// matchText reports whether needle is a case-insensitive substring of the
// pet's name or breed. Empty needle matches everything; absent fields are
// treated as empty strings.
func matchText(pet catalog.Pet, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(pet.Name), needle) ||
		strings.Contains(strings.ToLower(pet.Breed), needle)
}

// matchPersonalities requires every requested tag to be present (AND
// semantics). This narrows results as tags are added, which is the intended
// behavior of the personality facet.
func matchPersonalities(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, tag := range want {
		found := false
		for _, h := range have {
			if h == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchCategory applies the home-page facet. Dogs/Cats use breed keyword
// matching; Birds and Small pass everything through, matching the observed
// product behavior rather than a real classification.
func MatchCategory(pet catalog.Pet, cat Category) bool {
	switch cat {
	case "", CategoryAll:
		return true
	case CategoryDogs:
		return breedContainsAny(pet.Breed, dogKeywords)
	case CategoryCats:
		return breedContainsAny(pet.Breed, catKeywords)
	default:
		return true
	}
}

func breedContainsAny(breed string, keywords []string) bool {
	b := strings.ToLower(breed)
	for _, kw := range keywords {
		if strings.Contains(b, kw) {
			return true
		}
	}
	return false
}

// PersonalityOptions lists the tags offered by the search overlay.
func PersonalityOptions() []string {
	return []string{"Friendly", "Active", "Smart", "Quiet", "Playful", "Brave"}
}

// SizeOptions lists the selectable body sizes.
func SizeOptions() []catalog.Size {
	return []catalog.Size{catalog.SizeSmall, catalog.SizeMedium, catalog.SizeLarge}
}
