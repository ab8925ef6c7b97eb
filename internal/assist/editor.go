package assist

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// Edit implements ImageEditor. The instruction is applied to the source image
// by a multimodal model that returns the edited image inline.
func (s *Service) Edit(ctx context.Context, source Image, instruction string) (Image, error) {
	if len(source.Data) == 0 {
		return Image{}, &ops.OpError{Kind: ops.ErrUserInputInvalid, Message: "no source image"}
	}
	mime := source.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(source.Data, mime),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.editModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return Image{}, fmt.Errorf("image edit failed: %w", err)
	}

	// The model interleaves text and image parts; the first inline image is
	// the edited result.
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				logging.Assist("edited image: %d bytes", len(part.InlineData.Data))
				return Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
			}
		}
	}
	return Image{}, fmt.Errorf("image edit: %w", ops.ErrEmptyResult)
}
