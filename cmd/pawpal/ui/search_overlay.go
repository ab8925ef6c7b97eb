package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
	"pawpal/internal/search"
)

// SearchOverlayModel is the filter sheet layered over the home page. It edits
// a query draft; the home page applies the resulting filter.
type SearchOverlayModel struct {
	input textinput.Model

	sizeIdx       int // 0 = any, then SizeOptions()
	personalities map[string]bool
	categoryIdx   int

	styles Styles
}

// NewSearchOverlayModel creates the overlay with an empty query.
func NewSearchOverlayModel() SearchOverlayModel {
	ti := textinput.New()
	ti.Placeholder = "Search by name or breed..."
	ti.CharLimit = 60
	ti.Width = 40
	ti.Focus()

	return SearchOverlayModel{
		input:         ti,
		personalities: make(map[string]bool),
		styles:        DefaultStyles(),
	}
}

// Init initializes the model.
func (m SearchOverlayModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m SearchOverlayModel) Update(msg tea.Msg) (SearchOverlayModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			m.sizeIdx = (m.sizeIdx + 1) % (len(search.SizeOptions()) + 1)
			return m, nil
		case "ctrl+t":
			m.categoryIdx = (m.categoryIdx + 1) % len(search.Categories())
			return m, nil
		case "ctrl+r":
			return NewSearchOverlayModel(), nil
		case "1", "2", "3", "4", "5", "6":
			opts := search.PersonalityOptions()
			idx := int(key.String()[0] - '1')
			if idx < len(opts) {
				m.personalities[opts[idx]] = !m.personalities[opts[idx]]
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Query builds the filter query from the overlay's current state.
func (m SearchOverlayModel) Query() search.Query {
	q := search.Query{
		FreeText: m.input.Value(),
		Category: search.Categories()[m.categoryIdx],
	}
	if m.sizeIdx > 0 {
		size := search.SizeOptions()[m.sizeIdx-1]
		q.Size = &size
	}
	for tag, on := range m.personalities {
		if on {
			q.Personalities = append(q.Personalities, tag)
		}
	}
	return q
}

// SetStyles applies the active theme.
func (m *SearchOverlayModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the overlay.
func (m SearchOverlayModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Filter pets"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render("Size "))
	sb.WriteString(m.styles.Muted.Render("(ctrl+s) "))
	sb.WriteString(m.renderSizeRow())
	sb.WriteString("\n")

	sb.WriteString(m.styles.Bold.Render("Category "))
	sb.WriteString(m.styles.Muted.Render("(ctrl+t) "))
	sb.WriteString(m.renderCategoryRow())
	sb.WriteString("\n")

	sb.WriteString(m.styles.Bold.Render("Personality "))
	sb.WriteString(m.styles.Muted.Render("(1-6) "))
	sb.WriteString(m.renderPersonalityRow())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("[enter] apply  [ctrl+r] reset  [esc] close"))

	return m.styles.Card.Render(sb.String())
}

func (m SearchOverlayModel) renderSizeRow() string {
	parts := []string{m.renderChoice("Any", m.sizeIdx == 0)}
	for i, s := range search.SizeOptions() {
		parts = append(parts, m.renderChoice(string(s), m.sizeIdx == i+1))
	}
	return strings.Join(parts, " ")
}

func (m SearchOverlayModel) renderCategoryRow() string {
	parts := make([]string, 0, len(search.Categories()))
	for i, c := range search.Categories() {
		parts = append(parts, m.renderChoice(string(c), m.categoryIdx == i))
	}
	return strings.Join(parts, " ")
}

func (m SearchOverlayModel) renderPersonalityRow() string {
	parts := make([]string, 0, 6)
	for i, p := range search.PersonalityOptions() {
		label := fmt.Sprintf("%d:%s", i+1, p)
		parts = append(parts, m.renderChoice(label, m.personalities[p]))
	}
	return strings.Join(parts, " ")
}

func (m SearchOverlayModel) renderChoice(label string, on bool) string {
	if on {
		return m.styles.Selected.Render("[" + label + "]")
	}
	return m.styles.Muted.Render(label)
}

// sizeLabel is used by the home page's active-filter summary.
func sizeLabel(size *catalog.Size) string {
	if size == nil {
		return "Any"
	}
	return string(*size)
}
