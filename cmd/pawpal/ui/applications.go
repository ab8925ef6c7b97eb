package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
)

// ApplicationsPageModel lists the user's adoption applications.
type ApplicationsPageModel struct {
	width  int
	height int
	deps   *Deps
	styles Styles
}

// NewApplicationsPageModel creates the applications page.
func NewApplicationsPageModel(deps *Deps) ApplicationsPageModel {
	return ApplicationsPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m ApplicationsPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ApplicationsPageModel) Update(msg tea.Msg) (ApplicationsPageModel, tea.Cmd) {
	return m, nil
}

// SetSize updates the size.
func (m *ApplicationsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *ApplicationsPageModel) SetStyles(s Styles) {
	m.styles = s
}

func (m ApplicationsPageModel) statusStyle(status catalog.ApplicationStatus) string {
	switch status {
	case catalog.AppApproved:
		return m.styles.Success.Render(string(status))
	case catalog.AppRejected:
		return m.styles.Error.Render(string(status))
	default:
		return m.styles.Warning.Render(string(status))
	}
}

// View renders the page.
func (m ApplicationsPageModel) View() string {
	apps := m.deps.Store.Applications()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("My applications"))
	sb.WriteString("\n\n")

	if len(apps) == 0 {
		sb.WriteString(m.styles.Muted.Render("No applications yet. Find a friend on the home page!"))
		sb.WriteString("\n")
	}
	for _, app := range apps {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			m.styles.Bold.Render(app.PetName),
			m.statusStyle(app.Status),
			m.styles.Muted.Render(app.Date)))
	}
	return m.styles.Content.Render(sb.String())
}
