package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
	"pawpal/internal/session"
)

// PostPageModel is the full-screen post composer.
type PostPageModel struct {
	width  int
	height int
	deps   *Deps

	text textarea.Model

	styles Styles
}

// NewPostPageModel creates the composer.
func NewPostPageModel(deps *Deps) PostPageModel {
	ta := textarea.New()
	ta.Placeholder = "Share a moment with your pet..."
	ta.CharLimit = 500
	ta.SetHeight(6)
	ta.Focus()

	return PostPageModel{deps: deps, text: ta, styles: DefaultStyles()}
}

// Init initializes the model.
func (m PostPageModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m PostPageModel) Update(msg tea.Msg) (PostPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.text.Reset()
			_ = m.deps.Session.Navigate(session.PageCommunity)
			return m, nil
		case "ctrl+s":
			content := strings.TrimSpace(m.text.Value())
			if content == "" {
				return m, nil
			}
			m.deps.Store.AddPost(catalog.FeedPost{
				Author:  "You",
				Content: content,
			})
			m.text.Reset()
			_ = m.deps.Session.Navigate(session.PageCommunity)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// SetSize updates the size.
func (m *PostPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.text.SetWidth(w - 8)
}

// SetStyles applies the active theme.
func (m *PostPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m PostPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("New post"))
	sb.WriteString("\n\n")
	sb.WriteString(m.text.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Footer.Render("[ctrl+s] share  [esc] discard"))
	return m.styles.Content.Render(sb.String())
}
