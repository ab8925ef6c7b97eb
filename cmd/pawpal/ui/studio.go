package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/assist"
	"pawpal/internal/ops"
)

// StudioPageModel generates styled portraits and short clips of the selected
// pet. Image and video jobs run through independent trackers so one can be
// cancelled without touching the other.
type StudioPageModel struct {
	width  int
	height int
	deps   *Deps

	styleIdx int

	imageTracker *ops.Tracker[assist.Image]
	imageSnap    ops.Snapshot[assist.Image]

	editTracker *ops.Tracker[assist.Image]
	editSnap    ops.Snapshot[assist.Image]

	videoTracker *ops.Tracker[string]
	videoSnap    ops.Snapshot[string]

	styles Styles
}

// NewStudioPageModel creates the studio page.
func NewStudioPageModel(deps *Deps) StudioPageModel {
	return StudioPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m StudioPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StudioPageModel) Update(msg tea.Msg) (StudioPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case imageOpMsg:
		if matches(m.imageTracker, msg.ID) {
			m.imageSnap = ops.Snapshot[assist.Image](msg)
		}
		if matches(m.editTracker, msg.ID) {
			m.editSnap = ops.Snapshot[assist.Image](msg)
		}
		return m, nil
	case videoOpMsg:
		if matches(m.videoTracker, msg.ID) {
			m.videoSnap = ops.Snapshot[string](msg)
		}
		return m, nil
	case progressTickMsg:
		if m.imageTracker != nil {
			m.imageTracker.TickProgress()
		}
		if m.editTracker != nil {
			m.editTracker.TickProgress()
		}
		if m.videoTracker != nil {
			m.videoTracker.TickProgress()
		}
		m.refreshSnapshots()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.styleIdx = (m.styleIdx + 1) % len(assist.StylePresets())
		case "g":
			m.generateImage()
		case "e":
			m.editImage()
		case "v":
			m.generateVideo()
		case "x":
			if m.imageTracker != nil {
				m.imageTracker.Cancel()
			}
			if m.videoTracker != nil {
				m.videoTracker.Cancel()
			}
		case "r":
			if m.imageTracker != nil {
				_ = m.imageTracker.Retry(context.Background())
			}
			if m.videoTracker != nil {
				_ = m.videoTracker.Retry(context.Background())
			}
		}
	}
	return m, nil
}

func (m *StudioPageModel) refreshSnapshots() {
	if m.imageTracker != nil {
		m.imageSnap = m.imageTracker.Snapshot()
	}
	if m.editTracker != nil {
		m.editSnap = m.editTracker.Snapshot()
	}
	if m.videoTracker != nil {
		m.videoSnap = m.videoTracker.Snapshot()
	}
}

func inFlight[T any](tr *ops.Tracker[T]) bool {
	if tr == nil {
		return false
	}
	status := tr.Snapshot().Status
	return status == ops.StatusPending || status == ops.StatusPolling
}

func (m *StudioPageModel) generateImage() {
	pet, ok := m.deps.Session.SelectedPet()
	if !ok || m.deps.Images == nil || inFlight(m.imageTracker) {
		return
	}
	prompt := assist.PortraitPrompt(pet.Name, pet.Breed, assist.StylePresets()[m.styleIdx])
	generator := m.deps.Images
	m.imageTracker = m.deps.newImageTracker(ops.KindImageGeneration)
	_ = m.imageTracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[assist.Image], error) {
		img, err := generator.Generate(ctx, prompt)
		return ops.Outcome[assist.Image]{Value: img}, err
	})
}

// editImage touches up the last generated portrait.
func (m *StudioPageModel) editImage() {
	if m.deps.Editor == nil || inFlight(m.editTracker) {
		return
	}
	if m.imageSnap.Status != ops.StatusSucceeded || m.imageSnap.Result == nil {
		return
	}
	source := *m.imageSnap.Result
	editor := m.deps.Editor
	m.editTracker = m.deps.newImageTracker(ops.KindImageEdit)
	_ = m.editTracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[assist.Image], error) {
		img, err := editor.Edit(ctx, source, "Brighten the lighting and add a soft festive background")
		return ops.Outcome[assist.Image]{Value: img}, err
	})
}

func (m *StudioPageModel) generateVideo() {
	pet, ok := m.deps.Session.SelectedPet()
	if !ok || m.deps.Video == nil || inFlight(m.videoTracker) {
		return
	}
	prompt := fmt.Sprintf("A short heartwarming clip of %s, a %s, playing happily", pet.Name, pet.Breed)

	var reference *assist.Image
	if m.imageSnap.Status == ops.StatusSucceeded && m.imageSnap.Result != nil {
		reference = m.imageSnap.Result
	}

	video := m.deps.Video
	m.videoTracker = m.deps.newVideoTracker()
	_ = m.videoTracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[string], error) {
		job, err := video.StartJob(ctx, prompt, reference)
		if err != nil {
			return ops.Outcome[string]{}, err
		}
		return ops.Outcome[string]{
			Poll: func(ctx context.Context) (bool, string, error) {
				return video.Poll(ctx, job)
			},
		}, nil
	})
}

// SetSize updates the size.
func (m *StudioPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *StudioPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m StudioPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Pet studio"))
	sb.WriteString("\n")

	if pet, ok := m.deps.Session.SelectedPet(); ok {
		sb.WriteString(m.styles.Subtitle.Render("Starring " + pet.Name))
	} else {
		sb.WriteString(m.styles.Muted.Render("Select a pet on the home page first."))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render("Style "))
	for i, preset := range assist.StylePresets() {
		if i == m.styleIdx {
			sb.WriteString(m.styles.Selected.Render("[" + string(preset) + "] "))
		} else {
			sb.WriteString(m.styles.Muted.Render(string(preset) + " "))
		}
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render("Portrait  "))
	sb.WriteString(m.renderImageStatus(m.imageSnap, "Press g to generate a portrait."))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render("Touch-up  "))
	sb.WriteString(m.renderImageStatus(m.editSnap, "Press e to touch up the portrait."))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render("Clip      "))
	sb.WriteString(m.renderVideoStatus())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Footer.Render("[tab] style  [g] portrait  [e] touch up  [v] clip  [x] cancel  [r] retry"))
	return m.styles.Content.Render(sb.String())
}

func (m StudioPageModel) renderImageStatus(snap ops.Snapshot[assist.Image], idle string) string {
	switch snap.Status {
	case ops.StatusPending, ops.StatusPolling:
		return m.styles.Spinner.Render(snap.Progress)
	case ops.StatusSucceeded:
		if snap.Result != nil {
			return m.styles.Success.Render(fmt.Sprintf("Ready (%d KB)", len(snap.Result.Data)/1024))
		}
		return m.styles.Success.Render("Ready")
	case ops.StatusFailed:
		return m.renderFailure(snap.Err)
	case ops.StatusCancelled:
		return m.styles.Muted.Render("Cancelled.")
	}
	return m.styles.Muted.Render(idle)
}

func (m StudioPageModel) renderVideoStatus() string {
	switch m.videoSnap.Status {
	case ops.StatusPending:
		return m.styles.Spinner.Render(m.videoSnap.Progress)
	case ops.StatusPolling:
		return m.styles.Spinner.Render(m.videoSnap.Progress + " (rendering)")
	case ops.StatusSucceeded:
		if m.videoSnap.Result != nil {
			return m.styles.Success.Render("Ready: " + *m.videoSnap.Result)
		}
		return m.styles.Success.Render("Ready")
	case ops.StatusFailed:
		return m.renderFailure(m.videoSnap.Err)
	case ops.StatusCancelled:
		return m.styles.Muted.Render("Cancelled.")
	}
	return m.styles.Muted.Render("Press v to render a short clip.")
}

func (m StudioPageModel) renderFailure(err *ops.OpError) string {
	if err == nil {
		return m.styles.Error.Render("Failed.")
	}
	if err.Kind == ops.ErrQuotaOrBilling {
		return m.styles.Error.Render("API key rejected. Select a valid key, then press r.")
	}
	return m.styles.Error.Render("Failed: " + err.Message)
}
