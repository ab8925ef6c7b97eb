// Package session holds app-wide navigation and preference state: the current
// page, the selected pet, theme/language, and the device's geolocation. It is
// deliberately free of rendering concerns; the UI layer reads snapshots and
// reacts to the change callback.
package session

import (
	"sync"

	"pawpal/internal/catalog"
	"pawpal/internal/logging"
	"pawpal/internal/ops"
)

// Page identifies a top-level screen.
type Page string

const (
	PageWelcome      Page = "welcome"
	PageHome         Page = "home"
	PageDetails      Page = "details"
	PageMap          Page = "map"
	PageCommunity    Page = "community"
	PagePost         Page = "post"
	PageMessages     Page = "messages"
	PageChat         Page = "chat"
	PageProfile      Page = "profile"
	PageApplications Page = "applications"
	PageDiary        Page = "diary"
	PageStudio       Page = "studio"
)

// Theme is the visual mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language selects the UI language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// Geolocation is a device coordinate fix plus the resolved place name, when
// reverse geocoding has run.
type Geolocation struct {
	Latitude  float64
	Longitude float64
	Place     string
}

// Session is the navigation and preference state machine. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	page     Page
	selected string // pet id; resolved against the store on every read
	thread   string // active chat thread id, set when entering PageChat

	theme    Theme
	language Language
	location *Geolocation

	store    *catalog.Store
	onChange func()
}

// Option configures a Session.
type Option func(*Session)

// WithTheme sets the initial theme.
func WithTheme(th Theme) Option {
	return func(s *Session) { s.theme = th }
}

// WithLanguage sets the initial language.
func WithLanguage(l Language) Option {
	return func(s *Session) { s.language = l }
}

// WithOnChange registers a callback fired after every successful mutation,
// outside the session lock.
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

// New builds a session starting on the welcome page.
func New(store *catalog.Store, opts ...Option) *Session {
	s := &Session{
		page:     PageWelcome,
		theme:    ThemeLight,
		language: LanguageEnglish,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page returns the current page.
func (s *Session) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Navigate moves to page. Moving to the details page without a selected pet
// that still resolves in the catalog is rejected and leaves all state
// untouched.
func (s *Session) Navigate(page Page) error {
	s.mu.Lock()
	if page == PageDetails {
		if _, ok := s.store.ByID(s.selected); !ok {
			s.mu.Unlock()
			return &ops.OpError{Kind: ops.ErrUserInputInvalid, Message: "no pet selected"}
		}
	}
	from := s.page
	s.page = page
	s.mu.Unlock()

	logging.Session("navigate %s -> %s", from, page)
	s.changed()
	return nil
}

// SelectPet records the pet to show on the details page. Only the id is
// stored; the pet itself is looked up fresh from the catalog on each read so
// the session never carries a stale copy.
func (s *Session) SelectPet(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	s.changed()
}

// OpenDetails selects the pet and navigates to the details page in one step.
func (s *Session) OpenDetails(id string) error {
	s.SelectPet(id)
	return s.Navigate(PageDetails)
}

// SelectedPet resolves the selected pet against the catalog. ok is false when
// nothing is selected or the pet has since disappeared.
func (s *Session) SelectedPet() (catalog.Pet, bool) {
	s.mu.Lock()
	id := s.selected
	s.mu.Unlock()
	if id == "" {
		return catalog.Pet{}, false
	}
	return s.store.ByID(id)
}

// OpenThread selects a chat thread and navigates to the chat page.
func (s *Session) OpenThread(id string) error {
	s.mu.Lock()
	s.thread = id
	s.mu.Unlock()
	return s.Navigate(PageChat)
}

// ActiveThread returns the chat thread id last opened, if any.
func (s *Session) ActiveThread() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thread
}

// Theme returns the current theme.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips light/dark.
func (s *Session) ToggleTheme() {
	s.mu.Lock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	s.mu.Unlock()
	s.changed()
}

// Language returns the current UI language.
func (s *Session) Language() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// ToggleLanguage flips English/Chinese.
func (s *Session) ToggleLanguage() {
	s.mu.Lock()
	if s.language == LanguageEnglish {
		s.language = LanguageChinese
	} else {
		s.language = LanguageEnglish
	}
	s.mu.Unlock()
	s.changed()
}

// SetGeolocation records the device fix. Place may be empty until reverse
// geocoding completes.
func (s *Session) SetGeolocation(lat, lng float64, place string) {
	s.mu.Lock()
	s.location = &Geolocation{Latitude: lat, Longitude: lng, Place: place}
	s.mu.Unlock()
	logging.Session("geolocation fix %.4f,%.4f %q", lat, lng, place)
	s.changed()
}

// Geolocation returns the last fix, ok=false before the first one arrives.
func (s *Session) Geolocation() (Geolocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return Geolocation{}, false
	}
	return *s.location, true
}

// TabBarVisible reports whether the bottom tab bar is shown for the current
// page. Full-screen flows (welcome, pet details, post composition) hide it.
func (s *Session) TabBarVisible() bool {
	switch s.Page() {
	case PageWelcome, PageDetails, PagePost:
		return false
	}
	return true
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
