package assist

import (
	"fmt"
	"strings"

	"pawpal/internal/catalog"
)

// AssistantSystemPrompt instructs the adoption assistant chat persona.
const AssistantSystemPrompt = `You are PawPal, a warm and knowledgeable pet adoption assistant.
You help people find the right pet, prepare their home, and understand the
adoption process. Answer concisely in Markdown. When asked about a specific
pet, use the provided profile; never invent medical facts.`

// PetContextPrompt renders a pet profile as assistant context.
func PetContextPrompt(pet catalog.Pet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pet profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", pet.Name)
	fmt.Fprintf(&b, "- Breed: %s\n", pet.Breed)
	fmt.Fprintf(&b, "- Age: %s\n", pet.Age)
	fmt.Fprintf(&b, "- Size: %s, Weight: %s, Gender: %s\n", pet.Size, pet.Weight, pet.Gender)
	if len(pet.Personality) > 0 {
		fmt.Fprintf(&b, "- Personality: %s\n", strings.Join(pet.Personality, ", "))
	}
	if pet.Description != "" {
		fmt.Fprintf(&b, "- About: %s\n", pet.Description)
	}
	return b.String()
}

// RoomMatchPrompt asks the model to judge how well a pet would fit the living
// space shown in an attached photo. The response feeds the visual-match
// overlay verbatim.
func RoomMatchPrompt(pet catalog.Pet) string {
	return fmt.Sprintf(`Look at this photo of a living space. Assess how suitable it is for %s,
a %s %s with a %s personality. Comment on space, hazards, and cozy spots,
then give a match score out of 10 with one short reason. Keep it under 120
words, friendly in tone, formatted as Markdown.`,
		pet.Name, strings.ToLower(string(pet.Size)), pet.Breed,
		strings.ToLower(strings.Join(pet.Personality, ", ")))
}

// DiaryEntryPrompt turns a short note about a pet's day into a diary entry
// written in the pet's voice.
func DiaryEntryPrompt(petName, note string) string {
	return fmt.Sprintf(`Write a short, playful diary entry (under 80 words) in the first-person
voice of a pet named %s, based on this note from their human: %q.
Markdown, one emoji at most.`, petName, note)
}
