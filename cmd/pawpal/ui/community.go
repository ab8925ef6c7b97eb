package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/session"
)

// CommunityPageModel is the shared feed of adoption stories.
type CommunityPageModel struct {
	width  int
	height int
	deps   *Deps
	cursor int
	styles Styles
}

// NewCommunityPageModel creates the community page.
func NewCommunityPageModel(deps *Deps) CommunityPageModel {
	return CommunityPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m CommunityPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CommunityPageModel) Update(msg tea.Msg) (CommunityPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	posts := m.deps.Store.Posts()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(posts)-1 {
			m.cursor++
		}
	case "l":
		if m.cursor < len(posts) {
			m.deps.Store.ToggleLike(posts[m.cursor].ID)
		}
	case "n":
		_ = m.deps.Session.Navigate(session.PagePost)
	}
	return m, nil
}

// SetSize updates the size.
func (m *CommunityPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *CommunityPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m CommunityPageModel) View() string {
	posts := m.deps.Store.Posts()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Community"))
	sb.WriteString("\n\n")

	if len(posts) == 0 {
		sb.WriteString(m.styles.Muted.Render("No stories yet. Share the first one!"))
		sb.WriteString("\n")
	}
	for i, post := range posts {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.Selected.Render("> ")
		}
		heart := "♡"
		if post.Liked {
			heart = m.styles.Error.Render("♥")
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", marker,
			m.styles.Bold.Render(post.Author),
			m.styles.Muted.Render(post.Time)))
		sb.WriteString("    " + m.styles.Body.Render(post.Content) + "\n")
		sb.WriteString(fmt.Sprintf("    %s %d   💬 %d\n\n", heart, post.Likes, post.Comments))
	}

	sb.WriteString(m.styles.Footer.Render("[l] like  [n] new post  [↑↓] scroll"))
	return m.styles.Content.Render(sb.String())
}
