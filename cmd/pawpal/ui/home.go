package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
	"pawpal/internal/search"
)

// HomePageModel lists the adoptable pets with the search overlay on top.
type HomePageModel struct {
	width  int
	height int
	deps   *Deps

	filtered []catalog.Pet
	query    search.Query
	cursor   int

	overlayOpen bool
	overlay     SearchOverlayModel

	styles Styles
}

// NewHomePageModel creates the home page over the full catalog.
func NewHomePageModel(deps *Deps) HomePageModel {
	m := HomePageModel{
		deps:    deps,
		overlay: NewSearchOverlayModel(),
		styles:  DefaultStyles(),
	}
	m.refresh()
	return m
}

// refresh re-runs the active filter against the current catalog.
func (m *HomePageModel) refresh() {
	m.filtered = search.Filter(m.deps.Store.All(), m.query)
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

// Init initializes the model.
func (m HomePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m HomePageModel) Update(msg tea.Msg) (HomePageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.overlayOpen {
		switch key.String() {
		case "esc":
			m.overlayOpen = false
			return m, nil
		case "enter":
			m.query = m.overlay.Query()
			m.overlayOpen = false
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		// Live filtering: every keystroke narrows the list behind the sheet.
		m.query = m.overlay.Query()
		m.refresh()
		return m, cmd
	}

	switch key.String() {
	case "/":
		m.overlayOpen = true
		return m, m.overlay.Init()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.filtered) {
			_ = m.deps.Session.OpenDetails(m.filtered[m.cursor].ID)
		}
	}
	return m, nil
}

// SetSize updates the size.
func (m *HomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *HomePageModel) SetStyles(s Styles) {
	m.styles = s
	m.overlay.SetStyles(s)
}

// View renders the page.
func (m HomePageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Pets near you"))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilterSummary())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(m.styles.Muted.Render("No pets match your filters."))
	}
	for i, pet := range m.filtered {
		sb.WriteString(m.renderPetRow(pet, i == m.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("[/] filter  [↑↓] select  [enter] details"))

	body := m.styles.Content.Render(sb.String())
	if m.overlayOpen {
		return body + "\n" + m.overlay.View()
	}
	return body
}

func (m HomePageModel) renderFilterSummary() string {
	parts := []string{
		"Category: " + string(m.query.Category),
		"Size: " + sizeLabel(m.query.Size),
	}
	if len(m.query.Personalities) > 0 {
		parts = append(parts, "Tags: "+strings.Join(m.query.Personalities, "+"))
	}
	if m.query.FreeText != "" {
		parts = append(parts, fmt.Sprintf("%q", m.query.FreeText))
	}
	if m.query.Category == "" {
		parts[0] = "Category: " + string(search.CategoryAll)
	}
	return m.styles.Subtitle.Render(strings.Join(parts, "  ·  "))
}

func (m HomePageModel) renderPetRow(pet catalog.Pet, selected bool) string {
	marker := "  "
	nameStyle := m.styles.Bold
	if selected {
		marker = m.styles.Selected.Render("> ")
		nameStyle = m.styles.Selected
	}

	var status string
	switch pet.AdoptionStatus {
	case catalog.StatusAvailable:
		status = m.styles.Success.Render(string(pet.AdoptionStatus))
	case catalog.StatusPending:
		status = m.styles.Warning.Render(string(pet.AdoptionStatus))
	default:
		status = m.styles.Muted.Render(string(pet.AdoptionStatus))
	}

	line := fmt.Sprintf("%s%s  %s · %s · %s away  %s",
		marker,
		nameStyle.Render(pet.Name),
		pet.Breed, pet.Age, pet.Distance,
		status)
	if len(pet.Personality) > 0 {
		line += "\n    " + m.styles.Muted.Render(strings.Join(pet.Personality, " · "))
	}
	return line
}
