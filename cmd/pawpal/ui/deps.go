package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pawpal/internal/assist"
	"pawpal/internal/catalog"
	"pawpal/internal/geo"
	"pawpal/internal/ops"
	"pawpal/internal/session"
)

// Deps bundles everything the UI needs from the rest of the app. Pages
// receive collaborator interfaces, never the concrete service, so tests can
// substitute fakes.
type Deps struct {
	Store   *catalog.Store
	Session *session.Session

	Completer assist.Completer
	Images    assist.ImageGenerator
	Editor    assist.ImageEditor
	Video     assist.VideoGenerator
	Shelters  assist.ShelterFinder
	Gate      ops.CredentialGate

	Geo geo.Provider

	PollInterval time.Duration

	// events bridges tracker notify callbacks into the program loop. The
	// shell creates it; pages only send.
	events chan tea.Msg
}

func (d *Deps) pollInterval() time.Duration {
	if d.PollInterval <= 0 {
		return 5 * time.Second
	}
	return d.PollInterval
}

// Trackers finish once: a terminal tracker is replaced, not restarted, so
// each request gets a fresh lifecycle. These helpers build a tracker wired to
// the event bridge.

func (d *Deps) newChatTracker() *ops.Tracker[string] {
	return ops.NewTracker[string](ops.KindChatCompletion,
		ops.WithCredentialGate[string](d.Gate),
		ops.WithNotify[string](func(s ops.Snapshot[string]) { d.events <- chatOpMsg(s) }))
}

func (d *Deps) newImageTracker(kind ops.Kind) *ops.Tracker[assist.Image] {
	return ops.NewTracker[assist.Image](kind,
		ops.WithCredentialGate[assist.Image](d.Gate),
		ops.WithNotify[assist.Image](func(s ops.Snapshot[assist.Image]) { d.events <- imageOpMsg(s) }))
}

func (d *Deps) newVideoTracker() *ops.Tracker[string] {
	return ops.NewTracker[string](ops.KindVideoGeneration,
		ops.WithPollInterval[string](d.pollInterval()),
		ops.WithCredentialGate[string](d.Gate),
		ops.WithNotify[string](func(s ops.Snapshot[string]) { d.events <- videoOpMsg(s) }))
}

func (d *Deps) newShelterTracker() *ops.Tracker[assist.ShelterResults] {
	return ops.NewTracker[assist.ShelterResults](ops.KindGeocodeLookup,
		ops.WithNotify[assist.ShelterResults](func(s ops.Snapshot[assist.ShelterResults]) { d.events <- shelterOpMsg(s) }))
}

// matches reports whether a snapshot belongs to the given tracker. Pages own
// their trackers and ignore snapshots from anyone else's.
func matches[T any](tr *ops.Tracker[T], id string) bool {
	return tr != nil && tr.ID() == id
}
