package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
	"pawpal/internal/session"
)

// ChatPageModel is one conversation with a shelter or owner.
type ChatPageModel struct {
	width  int
	height int
	deps   *Deps

	input textinput.Model

	styles Styles
}

// NewChatPageModel creates the chat page.
func NewChatPageModel(deps *Deps) ChatPageModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 300
	ti.Width = 50
	ti.Focus()

	return ChatPageModel{deps: deps, input: ti, styles: DefaultStyles()}
}

// Init initializes the model.
func (m ChatPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ChatPageModel) Update(msg tea.Msg) (ChatPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			_ = m.deps.Session.Navigate(session.PageMessages)
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.deps.Store.AddMessage(catalog.ChatMessage{
				ThreadID: m.deps.Session.ActiveThread(),
				SenderID: "me",
				Text:     text,
				IsMe:     true,
			})
			m.input.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetSize updates the size.
func (m *ChatPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 8
}

// SetStyles applies the active theme.
func (m *ChatPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m ChatPageModel) View() string {
	threadID := m.deps.Session.ActiveThread()
	thread, ok := m.deps.Store.Thread(threadID)
	if !ok {
		return m.styles.Content.Render(m.styles.Error.Render("Conversation not found."))
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(thread.Name))
	if thread.IsOnline {
		sb.WriteString(m.styles.Success.Render("  ● online"))
	}
	sb.WriteString("\n\n")

	for _, msg := range m.deps.Store.Messages(threadID) {
		if msg.IsMe {
			sb.WriteString(m.styles.Selected.Render("You: "))
		} else {
			sb.WriteString(m.styles.Bold.Render(thread.Name + ": "))
		}
		sb.WriteString(m.styles.Body.Render(msg.Text))
		sb.WriteString("  " + m.styles.Muted.Render(msg.Time))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("[enter] send  [esc] back"))
	return m.styles.Content.Render(sb.String())
}
