package ops

// defaultProgress returns the rotating status strings shown while an
// operation of the given kind is in flight. Cosmetic only; the rotation
// index lives outside the state machine.
func defaultProgress(kind Kind) []string {
	switch kind {
	case KindChatCompletion:
		return []string{"Thinking...", "Almost there..."}
	case KindImageGeneration:
		return []string{"Warming up the easel...", "Mixing the colors...", "Adding the details..."}
	case KindVideoGeneration:
		return []string{
			"Storyboarding your clip...",
			"Rendering frames...",
			"This can take a minute or two...",
			"Polishing the final cut...",
		}
	case KindImageEdit:
		return []string{"Touching up the photo...", "Balancing the light..."}
	case KindGeocodeLookup:
		return []string{"Locating..."}
	default:
		return []string{"Working..."}
	}
}
