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

// AssistantModel is the adoption-assistant overlay, available from any page.
// Answers render as Markdown.
type AssistantModel struct {
	width int
	deps  *Deps
	input textinput.Model

	tracker *ops.Tracker[string]
	snap    ops.Snapshot[string]

	renderer *glamour.TermRenderer

	styles Styles
}

// NewAssistantModel creates the overlay.
func NewAssistantModel(deps *Deps) AssistantModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about adoption, care, or a specific pet..."
	ti.CharLimit = 300
	ti.Width = 50
	ti.Focus()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return AssistantModel{deps: deps, input: ti, renderer: renderer, styles: DefaultStyles()}
}

// Init initializes the model.
func (m AssistantModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m AssistantModel) Update(msg tea.Msg) (AssistantModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatOpMsg:
		if matches(m.tracker, msg.ID) {
			m.snap = ops.Snapshot[string](msg)
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
			m.ask()
			return m, nil
		case "ctrl+x":
			if m.tracker != nil {
				m.tracker.Cancel()
			}
			return m, nil
		case "ctrl+r":
			if m.tracker != nil {
				_ = m.tracker.Retry(context.Background())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask launches a completion for the typed question, anchored to the selected
// pet when there is one.
func (m *AssistantModel) ask() {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.deps.Completer == nil {
		return
	}
	if m.tracker != nil {
		status := m.tracker.Snapshot().Status
		if status == ops.StatusPending || status == ops.StatusPolling {
			return
		}
	}

	prompt := question
	if pet, ok := m.deps.Session.SelectedPet(); ok {
		prompt = assist.PetContextPrompt(pet) + "\n" + question
	}

	completer := m.deps.Completer
	m.tracker = m.deps.newChatTracker()
	m.input.Reset()
	_ = m.tracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[string], error) {
		answer, err := completer.CompleteWithSystem(ctx, assist.AssistantSystemPrompt, prompt)
		return ops.Outcome[string]{Value: answer}, err
	})
}

// SetSize updates the size.
func (m *AssistantModel) SetSize(w, h int) {
	m.width = w
	m.input.Width = w - 8
	if w > 8 {
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(w-8),
		)
	}
}

// SetStyles applies the active theme.
func (m *AssistantModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the overlay.
func (m AssistantModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("🐾 Adoption assistant"))
	sb.WriteString("\n")

	switch m.snap.Status {
	case ops.StatusPending, ops.StatusPolling:
		sb.WriteString(m.styles.Spinner.Render(m.snap.Progress))
	case ops.StatusFailed:
		if m.snap.Err != nil {
			if m.snap.Err.Kind == ops.ErrQuotaOrBilling {
				sb.WriteString(m.styles.Error.Render("Your API key was rejected. Select a valid key and press ctrl+r to retry."))
			} else {
				sb.WriteString(m.styles.Error.Render("Something went wrong: " + m.snap.Err.Message))
				sb.WriteString("\n" + m.styles.Muted.Render("[ctrl+r] retry"))
			}
		}
	case ops.StatusCancelled:
		sb.WriteString(m.styles.Muted.Render("Cancelled."))
	case ops.StatusSucceeded:
		if m.snap.Result != nil {
			rendered := *m.snap.Result
			if m.renderer != nil {
				if out, err := m.renderer.Render(rendered); err == nil {
					rendered = out
				}
			}
			sb.WriteString(rendered)
		}
	default:
		sb.WriteString(m.styles.Muted.Render("Ask me anything about pet adoption."))
	}

	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("[enter] ask  [ctrl+x] cancel  [esc] close"))
	return m.styles.Card.Render(sb.String())
}
