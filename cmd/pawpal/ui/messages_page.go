package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MessagesPageModel lists chat threads with shelters and owners.
type MessagesPageModel struct {
	width  int
	height int
	deps   *Deps
	cursor int
	styles Styles
}

// NewMessagesPageModel creates the thread list.
func NewMessagesPageModel(deps *Deps) MessagesPageModel {
	return MessagesPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m MessagesPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MessagesPageModel) Update(msg tea.Msg) (MessagesPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	threads := m.deps.Store.Threads()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(threads)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(threads) {
			_ = m.deps.Session.OpenThread(threads[m.cursor].ID)
		}
	}
	return m, nil
}

// SetSize updates the size.
func (m *MessagesPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *MessagesPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m MessagesPageModel) View() string {
	threads := m.deps.Store.Threads()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Messages"))
	sb.WriteString("\n\n")

	for i, th := range threads {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("> ")
		}
		online := " "
		if th.IsOnline {
			online = m.styles.Success.Render("●")
		}
		name := m.styles.Bold.Render(th.Name)
		if th.Unread > 0 {
			name += " " + m.styles.Badge.Render(fmt.Sprintf("%d", th.Unread))
		}
		sb.WriteString(fmt.Sprintf("%s%s %s  %s\n", marker, online, name, m.styles.Muted.Render(th.Time)))
		sb.WriteString("     " + m.styles.Muted.Render(th.LastMsg) + "\n\n")
	}

	sb.WriteString(m.styles.Footer.Render("[enter] open  [↑↓] select"))
	return m.styles.Content.Render(sb.String())
}
