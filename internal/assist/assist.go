// Package assist defines the app's generative collaborators: chat completion,
// image generation and editing, video generation, and grounded shelter search.
// Interfaces are defined here so pages and trackers depend on behavior, not on
// a provider SDK; the genai-backed implementations live alongside.
package assist

import "context"

// Completer produces a text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageGenerator renders a single image for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (Image, error)
}

// ImageEditor applies a natural-language instruction to an existing image.
type ImageEditor interface {
	Edit(ctx context.Context, source Image, instruction string) (Image, error)
}

// VideoGenerator starts a long-running video render and exposes it as a
// pollable job. Callers drive the polling cadence; the generator never sleeps.
type VideoGenerator interface {
	StartJob(ctx context.Context, prompt string, reference *Image) (*VideoJob, error)
	Poll(ctx context.Context, job *VideoJob) (done bool, uri string, err error)
	Download(ctx context.Context, uri string) ([]byte, error)
}

// ShelterFinder resolves nearby shelters and adoption events around a
// coordinate, returning structured places plus the provider's narrative.
type ShelterFinder interface {
	FindNearby(ctx context.Context, lat, lng float64, query string) (ShelterResults, error)
}

// Image is an encoded image payload.
type Image struct {
	Data     []byte
	MIMEType string
}

// Shelter is one grounded place result.
type Shelter struct {
	Title   string
	URI     string
	PlaceID string
}

// ShelterResults bundles the narrative answer with its grounding places.
type ShelterResults struct {
	Narrative string
	Places    []Shelter
}
