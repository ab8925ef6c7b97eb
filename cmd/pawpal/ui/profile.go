package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/session"
)

// ProfilePageModel holds account info and preference toggles.
type ProfilePageModel struct {
	width  int
	height int
	deps   *Deps
	styles Styles
}

// NewProfilePageModel creates the profile page.
func NewProfilePageModel(deps *Deps) ProfilePageModel {
	return ProfilePageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m ProfilePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ProfilePageModel) Update(msg tea.Msg) (ProfilePageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "t":
		m.deps.Session.ToggleTheme()
	case "g":
		m.deps.Session.ToggleLanguage()
	case "a":
		_ = m.deps.Session.Navigate(session.PageApplications)
	case "d":
		_ = m.deps.Session.Navigate(session.PageDiary)
	case "s":
		_ = m.deps.Session.Navigate(session.PageStudio)
	}
	return m, nil
}

// SetSize updates the size.
func (m *ProfilePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *ProfilePageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m ProfilePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Profile"))
	sb.WriteString("\n\n")

	apps := m.deps.Store.Applications()
	posts := m.deps.Store.Posts()
	sb.WriteString(fmt.Sprintf("  %s %d    %s %d\n\n",
		m.styles.Bold.Render("Applications:"), len(apps),
		m.styles.Bold.Render("Posts:"), len(posts)))

	theme := m.deps.Session.Theme()
	lang := "English"
	if m.deps.Session.Language() == session.LanguageChinese {
		lang = "中文"
	}
	sb.WriteString(fmt.Sprintf("  %s %s   %s\n", m.styles.Bold.Render("Theme:"), theme,
		m.styles.Muted.Render("[t] toggle")))
	sb.WriteString(fmt.Sprintf("  %s %s   %s\n\n", m.styles.Bold.Render("Language:"), lang,
		m.styles.Muted.Render("[g] toggle")))

	sb.WriteString(m.styles.Footer.Render("[a] applications  [d] pet diary  [s] studio"))
	return m.styles.Content.Render(sb.String())
}
