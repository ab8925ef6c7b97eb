package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/assist"
	"pawpal/internal/geo"
	"pawpal/internal/ops"
)

// Tracker snapshots arrive as messages so page models can re-render on every
// lifecycle transition without touching tracker internals.

// chatOpMsg carries a chat-completion tracker update.
type chatOpMsg ops.Snapshot[string]

// imageOpMsg carries an image-generation or image-edit tracker update.
type imageOpMsg ops.Snapshot[assist.Image]

// videoOpMsg carries a video-generation tracker update; the result is the
// finished clip's URI.
type videoOpMsg ops.Snapshot[string]

// shelterOpMsg carries a shelter-search tracker update.
type shelterOpMsg ops.Snapshot[assist.ShelterResults]

// geoFixMsg reports the boot-time geolocation lookup.
type geoFixMsg struct {
	fix    geo.Fix
	place  string
	places []geo.Place
	err    error
}

// progressTickMsg drives the rotating progress messages.
type progressTickMsg struct{}

// sessionChangedMsg is emitted when navigation or preference state changes
// outside the Update loop.
type sessionChangedMsg struct{}

// credentialPromptMsg asks the shell to open the key-selection banner.
type credentialPromptMsg struct{}

// listen forwards events from the bridge channel into the program.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
