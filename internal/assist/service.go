package assist

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// Service implements every collaborator interface on top of the Gemini API.
// One genai client is shared across all operation kinds.
type Service struct {
	client *genai.Client
	apiKey string

	chatModel  string
	imageModel string
	videoModel string
	editModel  string

	httpClient *http.Client
}

// Config selects the models used per operation. Zero values fall back to
// defaults.
type Config struct {
	APIKey     string
	ChatModel  string
	ImageModel string
	VideoModel string
	EditModel  string
}

// NewService builds the shared Gemini-backed collaborator.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	s := &Service{
		client:     client,
		apiKey:     cfg.APIKey,
		chatModel:  cfg.ChatModel,
		imageModel: cfg.ImageModel,
		videoModel: cfg.VideoModel,
		editModel:  cfg.EditModel,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	if s.chatModel == "" {
		s.chatModel = "gemini-2.5-flash"
	}
	if s.imageModel == "" {
		s.imageModel = "imagen-4.0-generate-001"
	}
	if s.videoModel == "" {
		s.videoModel = "veo-3.0-generate-001"
	}
	if s.editModel == "" {
		s.editModel = "gemini-2.5-flash-image"
	}
	logging.Assist("service ready: chat=%s image=%s video=%s edit=%s",
		s.chatModel, s.imageModel, s.videoModel, s.editModel)
	return s, nil
}

// Complete implements Completer.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, nil, prompt)
}

// CompleteWithSystem implements Completer with a system instruction.
func (s *Service) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if systemPrompt != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}
	return s.complete(ctx, cfg, userPrompt)
}

func (s *Service) complete(ctx context.Context, cfg *genai.GenerateContentConfig, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.chatModel, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini completion failed: %w", err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("completion: %w", ops.ErrEmptyResult)
	}
	return text, nil
}
