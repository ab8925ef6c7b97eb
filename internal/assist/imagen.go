package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// StylePreset names a portrait style offered by the studio page.
type StylePreset string

const (
	StyleCinematic  StylePreset = "cinematic"
	StylePixar      StylePreset = "pixar"
	StyleWatercolor StylePreset = "watercolor"
	StyleStudio     StylePreset = "studio"
	StyleCyberpunk  StylePreset = "cyberpunk"
)

// StylePresets returns the presets in display order.
func StylePresets() []StylePreset {
	return []StylePreset{StyleCinematic, StylePixar, StyleWatercolor, StyleStudio, StyleCyberpunk}
}

var stylePrompts = map[StylePreset]string{
	StyleCinematic:  "cinematic lighting, 35mm film still, shallow depth of field, golden hour",
	StylePixar:      "3D animated movie style, expressive big eyes, soft studio lighting, charming",
	StyleWatercolor: "delicate watercolor painting, soft washes of color, textured paper, gentle",
	StyleStudio:     "professional studio pet portrait, seamless backdrop, crisp softbox lighting",
	StyleCyberpunk:  "neon-lit cyberpunk scene, holographic accents, rain-slicked street at night",
}

// PortraitPrompt composes the image prompt for a styled pet portrait.
func PortraitPrompt(petName, breed string, style StylePreset) string {
	suffix, ok := stylePrompts[style]
	if !ok {
		suffix = stylePrompts[StyleStudio]
	}
	return fmt.Sprintf("A heartwarming portrait of %s, a %s, %s", petName, breed, suffix)
}

// Generate implements ImageGenerator using Imagen.
func (s *Service) Generate(ctx context.Context, prompt string) (Image, error) {
	resp, err := s.client.Models.GenerateImages(ctx, s.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "1:1",
	})
	if err != nil {
		return Image{}, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil ||
		len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return Image{}, fmt.Errorf("image generation: %w", ops.ErrEmptyResult)
	}

	img := resp.GeneratedImages[0].Image
	logging.Assist("generated image: %d bytes", len(img.ImageBytes))
	return Image{Data: img.ImageBytes, MIMEType: "image/jpeg"}, nil
}
