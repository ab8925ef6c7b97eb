package session

import (
	"errors"
	"testing"

	"pawpal/internal/catalog"
	"pawpal/internal/ops"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	store, err := catalog.NewSeededStore()
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return New(store)
}

func TestStartsOnWelcomeWithoutTabBar(t *testing.T) {
	s := newTestSession(t)
	if got := s.Page(); got != PageWelcome {
		t.Fatalf("initial page = %s, want welcome", got)
	}
	if s.TabBarVisible() {
		t.Fatal("tab bar must be hidden on the welcome page")
	}
}

func TestNavigateDetailsRequiresResolvablePet(t *testing.T) {
	s := newTestSession(t)
	_ = s.Navigate(PageHome)

	err := s.Navigate(PageDetails)
	if err == nil {
		t.Fatal("expected navigation to details without a selection to fail")
	}
	var opErr *ops.OpError
	if !errors.As(err, &opErr) || opErr.Kind != ops.ErrUserInputInvalid {
		t.Fatalf("error = %v, want user_input_invalid", err)
	}
	if got := s.Page(); got != PageHome {
		t.Fatalf("failed navigation mutated the page to %s", got)
	}

	// A selection pointing at a pet the catalog no longer has is just as
	// invalid as no selection.
	s.SelectPet("no-such-pet")
	if err := s.Navigate(PageDetails); err == nil {
		t.Fatal("expected navigation with a dangling selection to fail")
	}
	if got := s.Page(); got != PageHome {
		t.Fatalf("failed navigation mutated the page to %s", got)
	}
}

func TestOpenDetailsResolvesFreshFromCatalog(t *testing.T) {
	store, err := catalog.NewSeededStore()
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	s := New(store)

	pets := store.All()
	if err := s.OpenDetails(pets[0].ID); err != nil {
		t.Fatalf("open details: %v", err)
	}
	if got := s.Page(); got != PageDetails {
		t.Fatalf("page = %s, want details", got)
	}

	// Mutate the catalog record; the session must observe the new value
	// because it holds only the id.
	if !store.SetAdoptionStatus(pets[0].ID, catalog.StatusPending) {
		t.Fatal("set status: pet not found")
	}
	pet, ok := s.SelectedPet()
	if !ok {
		t.Fatal("selected pet should resolve")
	}
	if pet.AdoptionStatus != catalog.StatusPending {
		t.Fatalf("selected pet status = %s, want the updated catalog value", pet.AdoptionStatus)
	}
}

func TestTabBarVisibility(t *testing.T) {
	store, err := catalog.NewSeededStore()
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	s := New(store)
	petID := store.All()[0].ID

	cases := []struct {
		page    Page
		visible bool
	}{
		{PageHome, true},
		{PageMap, true},
		{PageCommunity, true},
		{PageMessages, true},
		{PageProfile, true},
		{PageApplications, true},
		{PageWelcome, false},
		{PagePost, false},
	}
	for _, tc := range cases {
		if err := s.Navigate(tc.page); err != nil {
			t.Fatalf("navigate %s: %v", tc.page, err)
		}
		if got := s.TabBarVisible(); got != tc.visible {
			t.Errorf("TabBarVisible on %s = %v, want %v", tc.page, got, tc.visible)
		}
	}

	if err := s.OpenDetails(petID); err != nil {
		t.Fatalf("open details: %v", err)
	}
	if s.TabBarVisible() {
		t.Error("tab bar must be hidden on the details page")
	}
}

func TestToggleThemeAndLanguageRoundTrip(t *testing.T) {
	s := newTestSession(t)

	if got := s.Theme(); got != ThemeLight {
		t.Fatalf("default theme = %s, want light", got)
	}
	s.ToggleTheme()
	if got := s.Theme(); got != ThemeDark {
		t.Fatalf("theme after toggle = %s, want dark", got)
	}
	s.ToggleTheme()
	if got := s.Theme(); got != ThemeLight {
		t.Fatalf("theme after double toggle = %s, want light", got)
	}

	s.ToggleLanguage()
	if got := s.Language(); got != LanguageChinese {
		t.Fatalf("language after toggle = %s, want zh", got)
	}
	s.ToggleLanguage()
	if got := s.Language(); got != LanguageEnglish {
		t.Fatalf("language after double toggle = %s, want en", got)
	}
}

func TestGeolocation(t *testing.T) {
	s := newTestSession(t)
	if _, ok := s.Geolocation(); ok {
		t.Fatal("no fix should be present before SetGeolocation")
	}
	s.SetGeolocation(31.2304, 121.4737, "Shanghai")
	fix, ok := s.Geolocation()
	if !ok {
		t.Fatal("fix should be present after SetGeolocation")
	}
	if fix.Place != "Shanghai" || fix.Latitude != 31.2304 {
		t.Fatalf("fix = %+v", fix)
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	store, err := catalog.NewSeededStore()
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	var fired int
	s := New(store, WithOnChange(func() { fired++ }))

	_ = s.Navigate(PageHome)
	s.ToggleTheme()
	s.SelectPet(store.All()[0].ID)
	if fired != 3 {
		t.Fatalf("onChange fired %d times, want 3", fired)
	}

	// A rejected navigation must not fire the callback.
	s.SelectPet("")
	fired = 0
	_ = s.Navigate(PageDetails)
	if fired != 0 {
		t.Fatalf("onChange fired %d times on a rejected navigation, want 0", fired)
	}
}
