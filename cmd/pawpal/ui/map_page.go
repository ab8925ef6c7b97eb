package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/assist"
	"pawpal/internal/geo"
	"pawpal/internal/ops"
)

// MapPageModel shows nearby shelters: structured places from the mapping
// provider plus a grounded narrative from the shelter finder.
type MapPageModel struct {
	width  int
	height int
	deps   *Deps

	places []geo.Place

	tracker *ops.Tracker[assist.ShelterResults]
	snap    ops.Snapshot[assist.ShelterResults]

	styles Styles
}

// NewMapPageModel creates the map page.
func NewMapPageModel(deps *Deps) MapPageModel {
	return MapPageModel{deps: deps, styles: DefaultStyles()}
}

// Init initializes the model.
func (m MapPageModel) Init() tea.Cmd {
	return nil
}

// SetPlaces installs the boot-time nearby place lookup.
func (m *MapPageModel) SetPlaces(places []geo.Place) {
	m.places = places
}

// Update handles messages.
func (m MapPageModel) Update(msg tea.Msg) (MapPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shelterOpMsg:
		if matches(m.tracker, msg.ID) {
			m.snap = ops.Snapshot[assist.ShelterResults](msg)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.startSearch()
		case "x":
			if m.tracker != nil {
				m.tracker.Cancel()
			}
		case "R":
			if m.tracker != nil {
				_ = m.tracker.Retry(context.Background())
			}
		}
	}
	return m, nil
}

// startSearch launches a fresh grounded shelter search around the current
// fix. Requires a geolocation; without one the search button stays inert.
func (m *MapPageModel) startSearch() {
	fix, ok := m.deps.Session.Geolocation()
	if !ok || m.deps.Shelters == nil {
		return
	}
	if m.tracker != nil && !m.tracker.Snapshot().Status.Terminal() &&
		m.tracker.Snapshot().Status != ops.StatusIdle && m.tracker.Snapshot().Status != ops.StatusFailed {
		return
	}

	m.tracker = m.deps.newShelterTracker()
	lat, lng := fix.Latitude, fix.Longitude
	finder := m.deps.Shelters
	_ = m.tracker.Start(context.Background(), func(ctx context.Context) (ops.Outcome[assist.ShelterResults], error) {
		res, err := finder.FindNearby(ctx, lat, lng, "animal shelters and adoption events nearby")
		return ops.Outcome[assist.ShelterResults]{Value: res}, err
	})
}

// SetSize updates the size.
func (m *MapPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetStyles applies the active theme.
func (m *MapPageModel) SetStyles(s Styles) {
	m.styles = s
}

// View renders the page.
func (m MapPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Shelters nearby"))
	sb.WriteString("\n")

	if fix, ok := m.deps.Session.Geolocation(); ok {
		place := fix.Place
		if place == "" {
			place = fmt.Sprintf("%.4f, %.4f", fix.Latitude, fix.Longitude)
		}
		sb.WriteString(m.styles.Subtitle.Render("📍 " + place))
	} else {
		sb.WriteString(m.styles.Muted.Render("Locating you..."))
	}
	sb.WriteString("\n\n")

	if len(m.places) > 0 {
		sb.WriteString(m.styles.Bold.Render("Around you"))
		sb.WriteString("\n")
		for _, p := range m.places {
			sb.WriteString(fmt.Sprintf("  %s  %s",
				m.styles.Body.Render(p.Name),
				m.styles.Muted.Render(p.Address)))
			if p.Distance != "" {
				sb.WriteString(m.styles.Muted.Render("  " + p.Distance + "m"))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderSearch())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("[r] search shelters  [R] retry  [x] cancel"))
	return m.styles.Content.Render(sb.String())
}

func (m MapPageModel) renderSearch() string {
	switch m.snap.Status {
	case ops.StatusPending, ops.StatusPolling:
		return m.styles.Spinner.Render(m.snap.Progress)
	case ops.StatusFailed:
		if m.snap.Err != nil {
			return m.styles.Error.Render("Search failed: " + m.snap.Err.Message)
		}
		return m.styles.Error.Render("Search failed.")
	case ops.StatusCancelled:
		return m.styles.Muted.Render("Search cancelled.")
	case ops.StatusSucceeded:
		if m.snap.Result == nil {
			return ""
		}
		var sb strings.Builder
		sb.WriteString(m.styles.Bold.Render("Adoption events & shelters"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Body.Render(m.snap.Result.Narrative))
		sb.WriteString("\n")
		for _, place := range m.snap.Result.Places {
			sb.WriteString("  • " + m.styles.Body.Render(place.Title))
			if place.URI != "" {
				sb.WriteString("  " + m.styles.Muted.Render(place.URI))
			}
			sb.WriteString("\n")
		}
		return sb.String()
	}
	return m.styles.Muted.Render("Press r to search for shelters and adoption events.")
}
