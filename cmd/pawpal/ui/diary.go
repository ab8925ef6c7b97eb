package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"pawpal/internal/assist"
	"pawpal/internal/ops"
)

// DiaryPageModel turns a short note into a diary entry written in the
// selected pet's voice.
type DiaryPageModel struct {
	width int
	deps  *Deps
	input textinput.Model

	tracker *ops.Tracker[string]
	snap    ops.Snapshot[string]

	entries  []string
	renderer *glamour.TermRenderer

	styles Styles
}

// NewDiaryPageModel creates the diary page.
func NewDiaryPageModel(deps *Deps) DiaryPageModel {
	ti := textinput.New()
	ti.Placeholder = "What happened today? e.g. first trip to the park"
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return DiaryPageModel{deps: deps, input: ti, renderer: renderer, styles: DefaultStyles()}
}

// Init initializes the model.
func (m DiaryPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m DiaryPageModel) Update(msg tea.Msg) (DiaryPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatOpMsg:
		if matches(m.tracker, msg.ID) {
			m.snap = ops.Snapshot[string](msg)
			if m.snap.Status == ops.StatusSucceeded && m.snap.Result != nil {
				m.entries = append([]string{*m.snap.Result}, m.entries...)
			}
		}
		return m, nil
	case progressTickMsg:
		if m.tracker != nil {
			m.tracker.TickProgress()
			m.snap = m.tracker.Snapshot()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.write()
			return m, nil
		case "ctrl+x":
			if m.tracker != nil {
				m.tracker.Cancel()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *DiaryPageModel) write() {
	note := strings.TrimSpace(m.input.Value())
	pet, ok := m.deps.Session.SelectedPet()
	if note == "" || !ok || m.deps.Completer == nil || inFlight(m.tracker) {
		return
	}

	prompt := assist.DiaryEntryPrompt(pet.Name, note)
	completer := m.deps.Completer
	m.tracker = m.deps.newChatTracker()
	m.input.Reset()
	_ = m.tracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[string], error) {
		entry, err := completer.Complete(ctx, prompt)
		return ops.Outcome[string]{Value: entry}, err
	})
}

// SetSize updates the size.
func (m *DiaryPageModel) SetSize(w, h int) {
	m.width = w
	m.input.Width = w - 8
}

// SetStyles applies the active theme.
func (m *DiaryPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m DiaryPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Pet diary"))
	sb.WriteString("\n")

	if pet, ok := m.deps.Session.SelectedPet(); ok {
		sb.WriteString(m.styles.Subtitle.Render("Writing as " + pet.Name))
	} else {
		sb.WriteString(m.styles.Muted.Render("Select a pet on the home page first."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	switch m.snap.Status {
	case ops.StatusPending, ops.StatusPolling:
		sb.WriteString(m.styles.Spinner.Render(m.snap.Progress))
		sb.WriteString("\n")
	case ops.StatusFailed:
		if m.snap.Err != nil {
			sb.WriteString(m.styles.Error.Render("Could not write the entry: " + m.snap.Err.Message))
			sb.WriteString("\n")
		}
	}

	for _, entry := range m.entries {
		rendered := entry
		if m.renderer != nil {
			if out, err := m.renderer.Render(entry); err == nil {
				rendered = out
			}
		}
		sb.WriteString(rendered)
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Footer.Render("[enter] write entry  [ctrl+x] cancel"))
	return m.styles.Content.Render(sb.String())
}
