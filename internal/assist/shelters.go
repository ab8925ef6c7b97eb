package assist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// FindNearby implements ShelterFinder using Maps grounding: the model answers
// the query anchored to the given coordinate and reports the places it used.
func (s *Service) FindNearby(ctx context.Context, lat, lng float64, query string) (ShelterResults, error) {
	if strings.TrimSpace(query) == "" {
		query = "animal shelters and pet adoption events near me"
	}

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleMaps: &genai.GoogleMaps{}},
		},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: &lat, Longitude: &lng},
			},
		},
	}
	contents := []*genai.Content{
		genai.NewContentFromText(query, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.chatModel, contents, cfg)
	if err != nil {
		return ShelterResults{}, fmt.Errorf("shelter search failed: %w", err)
	}

	results := ShelterResults{Narrative: resp.Text()}
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Maps == nil {
				continue
			}
			results.Places = append(results.Places, Shelter{
				Title:   chunk.Maps.Title,
				URI:     chunk.Maps.URI,
				PlaceID: chunk.Maps.PlaceID,
			})
		}
	}
	if results.Narrative == "" && len(results.Places) == 0 {
		return ShelterResults{}, fmt.Errorf("shelter search: %w", ops.ErrEmptyResult)
	}

	logging.Assist("shelter search near %.4f,%.4f: %d places", lat, lng, len(results.Places))
	return results, nil
}
