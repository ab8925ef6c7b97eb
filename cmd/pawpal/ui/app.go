package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"pawpal/internal/geo"
	"pawpal/internal/logging"
	"pawpal/internal/session"
)

// AppModel is the shell: it owns the page models, routes messages to the
// active page, and renders the tab bar and notification banner.
type AppModel struct {
	width  int
	height int
	deps   *Deps

	welcome      WelcomePageModel
	home         HomePageModel
	details      DetailsPageModel
	mapPage      MapPageModel
	community    CommunityPageModel
	post         PostPageModel
	messages     MessagesPageModel
	chat         ChatPageModel
	profile      ProfilePageModel
	applications ApplicationsPageModel
	diary        DiaryPageModel
	studio       StudioPageModel

	assistantOpen bool
	assistant     AssistantModel

	banner string

	styles Styles
}

// NewAppModel wires the shell together. The deps' event channel is created
// here; tracker callbacks and the credential gate feed it.
func NewAppModel(deps Deps) AppModel {
	d := &deps
	d.events = make(chan tea.Msg, 64)

	// Route the gate's re-prompt into the UI as a banner.
	if setter, ok := deps.Gate.(interface{ SetPrompt(func()) }); ok {
		events := d.events
		setter.SetPrompt(func() { events <- credentialPromptMsg{} })
	}

	styles := NewStyles(ThemeFor(deps.Session.Theme()))

	m := AppModel{
		deps:         d,
		welcome:      NewWelcomePageModel(d),
		home:         NewHomePageModel(d),
		details:      NewDetailsPageModel(d),
		mapPage:      NewMapPageModel(d),
		community:    NewCommunityPageModel(d),
		post:         NewPostPageModel(d),
		messages:     NewMessagesPageModel(d),
		chat:         NewChatPageModel(d),
		profile:      NewProfilePageModel(d),
		applications: NewApplicationsPageModel(d),
		diary:        NewDiaryPageModel(d),
		studio:       NewStudioPageModel(d),
		assistant:    NewAssistantModel(d),
	}
	m.applyStyles(styles)
	return m
}

// Init starts the event bridge, the progress ticker, and the boot-time
// geolocation lookup.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		listen(m.deps.events),
		progressTick(),
	}
	if m.deps.Geo != nil {
		cmds = append(cmds, locate(m.deps.Geo))
	}
	return tea.Batch(cmds...)
}

func progressTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

// locate resolves the device fix, then the place name and nearby pet
// services in parallel.
func locate(provider geo.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fix, err := provider.Locate(ctx)
		if err != nil {
			logging.GeoError("locate: %v", err)
			return geoFixMsg{err: err}
		}

		var place string
		var places []geo.Place
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			p, err := provider.ReverseGeocode(gctx, fix)
			if err != nil {
				// A fix without a name is still useful.
				logging.GeoError("reverse geocode: %v", err)
				return nil
			}
			place = p
			return nil
		})
		g.Go(func() error {
			p, err := provider.SearchNearby(gctx, fix, "animal shelter")
			if err != nil {
				logging.GeoError("nearby search: %v", err)
				return nil
			}
			places = p
			return nil
		})
		_ = g.Wait()

		return geoFixMsg{fix: fix, place: place, places: places}
	}
}

// typing reports whether the active surface owns free-form text input, which
// suppresses global single-key shortcuts.
func (m AppModel) typing() bool {
	if m.assistantOpen || m.home.overlayOpen {
		return true
	}
	switch m.deps.Session.Page() {
	case session.PagePost, session.PageChat, session.PageDiary:
		return true
	}
	return false
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.setSizes()
		return m, nil

	case credentialPromptMsg:
		m.banner = "An API key is required. Set GEMINI_API_KEY and restart, then retry the operation."
		cmds = append(cmds, listen(m.deps.events))
		return m, tea.Batch(cmds...)

	case geoFixMsg:
		if msg.err == nil {
			m.deps.Session.SetGeolocation(msg.fix.Latitude, msg.fix.Longitude, msg.place)
			m.mapPage.SetPlaces(msg.places)
		}
		return m, nil

	case progressTickMsg:
		m.assistant, _ = m.assistant.Update(msg)
		m.studio, _ = m.studio.Update(msg)
		m.diary, _ = m.diary.Update(msg)
		return m, progressTick()

	case chatOpMsg, imageOpMsg, videoOpMsg, shelterOpMsg:
		// Tracker updates fan out; each page ignores foreign tracker ids.
		m.assistant, _ = m.assistant.Update(msg)
		m.studio, _ = m.studio.Update(msg)
		m.diary, _ = m.diary.Update(msg)
		m.mapPage, _ = m.mapPage.Update(msg)
		cmds = append(cmds, listen(m.deps.events))
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	cmd := m.routeToActive(msg)
	m.syncTheme()
	return m, cmd
}

func (m *AppModel) handleGlobalKey(key tea.KeyMsg) (tea.Cmd, bool) {
	if key.String() == "ctrl+c" {
		return tea.Quit, true
	}

	if m.assistantOpen {
		if key.String() == "esc" {
			m.assistantOpen = false
			return nil, true
		}
		var cmd tea.Cmd
		m.assistant, cmd = m.assistant.Update(key)
		return cmd, true
	}

	if m.typing() {
		return nil, false
	}

	switch key.String() {
	case "q":
		return tea.Quit, true
	case "?":
		m.assistantOpen = true
		return m.assistant.Init(), true
	case "1":
		return nil, m.switchTab(session.PageHome)
	case "2":
		return nil, m.switchTab(session.PageMap)
	case "3":
		return nil, m.switchTab(session.PageCommunity)
	case "4":
		return nil, m.switchTab(session.PageMessages)
	case "5":
		return nil, m.switchTab(session.PageProfile)
	}
	return nil, false
}

// switchTab navigates via the tab bar; inert while the bar is hidden.
func (m *AppModel) switchTab(page session.Page) bool {
	if !m.deps.Session.TabBarVisible() {
		return false
	}
	if err := m.deps.Session.Navigate(page); err != nil {
		return false
	}
	if page == session.PageHome {
		m.home.refresh()
	}
	return true
}

func (m *AppModel) routeToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.deps.Session.Page() {
	case session.PageWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
	case session.PageHome:
		m.home, cmd = m.home.Update(msg)
	case session.PageDetails:
		before := m.deps.Session.Page()
		m.details, cmd = m.details.Update(msg)
		if before == session.PageDetails && m.deps.Session.Page() != session.PageDetails {
			m.details.Reset()
			m.home.refresh()
		}
	case session.PageMap:
		m.mapPage, cmd = m.mapPage.Update(msg)
	case session.PageCommunity:
		m.community, cmd = m.community.Update(msg)
	case session.PagePost:
		m.post, cmd = m.post.Update(msg)
	case session.PageMessages:
		m.messages, cmd = m.messages.Update(msg)
	case session.PageChat:
		m.chat, cmd = m.chat.Update(msg)
	case session.PageProfile:
		m.profile, cmd = m.profile.Update(msg)
	case session.PageApplications:
		m.applications, cmd = m.applications.Update(msg)
	case session.PageDiary:
		m.diary, cmd = m.diary.Update(msg)
	case session.PageStudio:
		m.studio, cmd = m.studio.Update(msg)
	}
	return cmd
}

// syncTheme re-derives styles when the session preference changed.
func (m *AppModel) syncTheme() {
	want := ThemeFor(m.deps.Session.Theme())
	if want.IsDark == m.styles.Theme.IsDark {
		return
	}
	m.applyStyles(NewStyles(want))
}

func (m *AppModel) applyStyles(s Styles) {
	m.styles = s
	m.welcome.SetStyles(s)
	m.home.SetStyles(s)
	m.details.SetStyles(s)
	m.mapPage.SetStyles(s)
	m.community.SetStyles(s)
	m.post.SetStyles(s)
	m.messages.SetStyles(s)
	m.chat.SetStyles(s)
	m.profile.SetStyles(s)
	m.applications.SetStyles(s)
	m.diary.SetStyles(s)
	m.studio.SetStyles(s)
	m.assistant.SetStyles(s)
}

func (m *AppModel) setSizes() {
	w, h := m.width, m.height
	m.welcome.SetSize(w, h)
	m.home.SetSize(w, h)
	m.details.SetSize(w, h)
	m.mapPage.SetSize(w, h)
	m.community.SetSize(w, h)
	m.post.SetSize(w, h)
	m.messages.SetSize(w, h)
	m.chat.SetSize(w, h)
	m.profile.SetSize(w, h)
	m.applications.SetSize(w, h)
	m.diary.SetSize(w, h)
	m.studio.SetSize(w, h)
	m.assistant.SetSize(w, h)
}

// View renders the active page plus chrome.
func (m AppModel) View() string {
	var body string
	switch m.deps.Session.Page() {
	case session.PageWelcome:
		body = m.welcome.View()
	case session.PageHome:
		body = m.home.View()
	case session.PageDetails:
		body = m.details.View()
	case session.PageMap:
		body = m.mapPage.View()
	case session.PageCommunity:
		body = m.community.View()
	case session.PagePost:
		body = m.post.View()
	case session.PageMessages:
		body = m.messages.View()
	case session.PageChat:
		body = m.chat.View()
	case session.PageProfile:
		body = m.profile.View()
	case session.PageApplications:
		body = m.applications.View()
	case session.PageDiary:
		body = m.diary.View()
	case session.PageStudio:
		body = m.studio.View()
	}

	sections := []string{}
	if m.banner != "" {
		sections = append(sections, m.styles.Warning.Render("⚠ "+m.banner))
	}
	sections = append(sections, body)
	if m.assistantOpen {
		sections = append(sections, m.assistant.View())
	}
	if m.deps.Session.TabBarVisible() {
		sections = append(sections, m.renderTabBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderTabBar() string {
	tabs := []struct {
		page  session.Page
		label string
	}{
		{session.PageHome, "1 Home"},
		{session.PageMap, "2 Map"},
		{session.PageCommunity, "3 Community"},
		{session.PageMessages, "4 Messages"},
		{session.PageProfile, "5 Profile"},
	}

	current := m.deps.Session.Page()
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := m.styles.TabOff
		if tab.page == current {
			style = m.styles.TabOn
		}
		parts = append(parts, style.Render(tab.label))
	}
	bar := "  " + joinWith(parts, "   ")
	return m.styles.RenderDivider(m.width) + "\n" + bar
}

func joinWith(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
