package assist

import (
	"strings"
	"testing"

	"pawpal/internal/catalog"
	"pawpal/internal/ops"
)

// The service must satisfy every collaborator interface.
var (
	_ Completer          = (*Service)(nil)
	_ ImageGenerator     = (*Service)(nil)
	_ ImageEditor        = (*Service)(nil)
	_ VideoGenerator     = (*Service)(nil)
	_ ShelterFinder      = (*Service)(nil)
	_ ops.CredentialGate = (*KeyGate)(nil)
)

func TestPortraitPromptStyles(t *testing.T) {
	got := PortraitPrompt("Bella", "Golden Retriever", StyleCinematic)
	if !strings.Contains(got, "Bella") || !strings.Contains(got, "Golden Retriever") {
		t.Fatalf("prompt missing pet identity: %q", got)
	}
	if !strings.Contains(got, "cinematic") {
		t.Fatalf("prompt missing style text: %q", got)
	}

	// Unknown presets fall back to the studio look rather than erroring.
	got = PortraitPrompt("Bella", "Golden Retriever", StylePreset("vaporwave"))
	if !strings.Contains(got, "studio pet portrait") {
		t.Fatalf("unknown style should fall back to studio: %q", got)
	}
}

func TestStylePresetsAllHavePrompts(t *testing.T) {
	for _, p := range StylePresets() {
		if _, ok := stylePrompts[p]; !ok {
			t.Errorf("preset %s has no prompt text", p)
		}
	}
}

func TestPetContextPrompt(t *testing.T) {
	pet := catalog.Pet{
		Name: "Mochi", Breed: "British Shorthair", Age: "1 year",
		Size: catalog.SizeSmall, Weight: "4kg", Gender: catalog.GenderFemale,
		Personality: []string{"Quiet", "Cuddly"},
		Description: "A gentle lap cat.",
	}
	got := PetContextPrompt(pet)
	for _, want := range []string{"Mochi", "British Shorthair", "Quiet, Cuddly", "A gentle lap cat."} {
		if !strings.Contains(got, want) {
			t.Errorf("context prompt missing %q:\n%s", want, got)
		}
	}
}

func TestRoomMatchPromptMentionsPet(t *testing.T) {
	pet := catalog.Pet{Name: "Bella", Breed: "Golden Retriever", Size: catalog.SizeMedium,
		Personality: []string{"Friendly", "Active"}}
	got := RoomMatchPrompt(pet)
	if !strings.Contains(got, "Bella") || !strings.Contains(got, "friendly, active") {
		t.Fatalf("room match prompt incomplete:\n%s", got)
	}
}

func TestKeyGate(t *testing.T) {
	prompts := 0
	gate := NewKeyGate("", func() { prompts++ })

	if gate.HasValidCredential() {
		t.Fatal("empty key must not count as a valid credential")
	}
	gate.PromptForCredential()
	if prompts != 1 {
		t.Fatalf("prompt hook fired %d times, want 1", prompts)
	}

	gate.SetKey("AIza-test")
	if !gate.HasValidCredential() {
		t.Fatal("key should now be valid")
	}
}

func TestKeyGateWithoutHookDoesNotPanic(t *testing.T) {
	gate := NewKeyGate("k", nil)
	gate.PromptForCredential()
	gate.SetPrompt(func() {})
	gate.PromptForCredential()
}
