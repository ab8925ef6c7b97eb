package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/session"
)

// WelcomePageModel is the full-screen landing page.
type WelcomePageModel struct {
	width  int
	height int
	deps   *Deps
	styles Styles
}

// NewWelcomePageModel creates the welcome page.
func NewWelcomePageModel(deps *Deps) WelcomePageModel {
	return WelcomePageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m WelcomePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m WelcomePageModel) Update(msg tea.Msg) (WelcomePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			_ = m.deps.Session.Navigate(session.PageHome)
		}
	}
	return m, nil
}

// SetSize updates the size.
func (m *WelcomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *WelcomePageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m WelcomePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Find your new best friend"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Body.Render("Browse pets waiting for a home, chat with shelters,\nand get help from your adoption assistant."))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Badge.Render(" Press Enter to get started "))
	return m.styles.Content.Render(sb.String())
}
