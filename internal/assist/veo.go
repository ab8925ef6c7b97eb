package assist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/genai"

	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// VideoJob is a handle to a long-running Veo render. The zero value is not
// usable; obtain one from StartJob.
type VideoJob struct {
	op *genai.GenerateVideosOperation
}

// StartJob implements VideoGenerator. The render runs server-side; the
// returned job must be polled until done.
func (s *Service) StartJob(ctx context.Context, prompt string, reference *Image) (*VideoJob, error) {
	var img *genai.Image
	if reference != nil {
		img = &genai.Image{ImageBytes: reference.Data, MIMEType: reference.MIMEType}
	}

	op, err := s.client.Models.GenerateVideos(ctx, s.videoModel, prompt, img, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("video generation failed to start: %w", err)
	}
	logging.Assist("video job started: %s", op.Name)
	return &VideoJob{op: op}, nil
}

// Poll implements VideoGenerator. Returns done=false while the render is
// still in flight; on completion, uri points at the finished clip.
func (s *Service) Poll(ctx context.Context, job *VideoJob) (bool, string, error) {
	op, err := s.client.Operations.GetVideosOperation(ctx, job.op, nil)
	if err != nil {
		return false, "", fmt.Errorf("video poll failed: %w", err)
	}
	job.op = op

	if !op.Done {
		return false, "", nil
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 ||
		op.Response.GeneratedVideos[0].Video == nil ||
		op.Response.GeneratedVideos[0].Video.URI == "" {
		return false, "", fmt.Errorf("video render: %w", ops.ErrEmptyResult)
	}

	uri := op.Response.GeneratedVideos[0].Video.URI
	logging.Assist("video job %s done: %s", op.Name, uri)
	return true, uri, nil
}

// Download implements VideoGenerator. The result URI requires the API key as
// a query parameter.
func (s *Service) Download(ctx context.Context, uri string) ([]byte, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		uri+sep+"key="+url.QueryEscape(s.apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("video download request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video download returned %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("video download read: %w", err)
	}
	logging.Assist("downloaded video: %d bytes", len(data))
	return data, nil
}
