package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/catalog"
	"pawpal/internal/session"
)

// DetailsPageModel is the full-screen pet profile.
type DetailsPageModel struct {
	width  int
	height int
	deps   *Deps

	applied bool // an application was just filed for this pet

	styles Styles
}

// NewDetailsPageModel creates the details page.
func NewDetailsPageModel(deps *Deps) DetailsPageModel {
	return DetailsPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m DetailsPageModel) Init() tea.Cmd {
	return nil
}

// Reset clears per-visit state when the page is re-entered.
func (m *DetailsPageModel) Reset() {
	m.applied = false
}

// Update handles messages.
func (m DetailsPageModel) Update(msg tea.Msg) (DetailsPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	pet, havePet := m.deps.Session.SelectedPet()

	switch key.String() {
	case "esc", "backspace":
		_ = m.deps.Session.Navigate(session.PageHome)
	case "a":
		if !havePet || m.applied || pet.AdoptionStatus != catalog.StatusAvailable {
			return m, nil
		}
		m.deps.Store.AddApplication(catalog.AdoptionApplication{
			PetName:  pet.Name,
			PetImage: pet.Image,
		})
		m.deps.Store.SetAdoptionStatus(pet.ID, catalog.StatusPending)
		m.applied = true
	case "c":
		if !havePet {
			return m, nil
		}
		// Open the thread with this pet's owner when one exists.
		for _, th := range m.deps.Store.Threads() {
			if th.Name == pet.Owner.Name {
				_ = m.deps.Session.OpenThread(th.ID)
				return m, nil
			}
		}
	}
	return m, nil
}

// SetSize updates the size.
func (m *DetailsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *DetailsPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m DetailsPageModel) View() string {
	pet, ok := m.deps.Session.SelectedPet()
	if !ok {
		return m.styles.Content.Render(m.styles.Error.Render("No pet selected."))
	}

	age := catalog.ParseAge(pet.Age)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(pet.Name))
	sb.WriteString(m.styles.Subtitle.Render("  " + pet.Breed))
	sb.WriteString("\n\n")

	facts := []string{
		fmt.Sprintf("%s %s", age.Value, age.Unit),
		string(pet.Gender),
		pet.Weight,
		string(pet.Size),
		pet.Distance + " away",
	}
	for _, f := range facts {
		sb.WriteString(m.styles.Tag.Render(f))
		sb.WriteString(" ")
	}
	sb.WriteString("\n\n")

	if len(pet.Personality) > 0 {
		sb.WriteString(m.styles.Bold.Render("Personality: "))
		sb.WriteString(strings.Join(pet.Personality, " · "))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.styles.Body.Render(pet.Description))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Bold.Render("Cared for by "))
	sb.WriteString(fmt.Sprintf("%s (%s)", pet.Owner.Name, pet.Owner.Location))
	sb.WriteString("\n\n")

	switch {
	case m.applied:
		sb.WriteString(m.styles.Success.Render("Application sent! Track it on the applications page."))
	case pet.AdoptionStatus == catalog.StatusAvailable:
		sb.WriteString(m.styles.Badge.Render(" [a] Apply to adopt "))
	default:
		sb.WriteString(m.styles.Warning.Render("Adoption " + strings.ToLower(string(pet.AdoptionStatus))))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Footer.Render("[a] apply  [c] chat with owner  [esc] back"))

	return m.styles.Content.Render(sb.String())
}
