package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestNewStoreRejectsDuplicateIDs(t *testing.T) {
	_, err := NewStore([]Pet{{ID: "p1", Name: "A"}, {ID: "p1", Name: "B"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pet id")
}

func TestAllReturnsCopy(t *testing.T) {
	store, err := NewSeededStore()
	require.NoError(t, err)

	pets := store.All()
	require.NotEmpty(t, pets)
	pets[0].Name = "Mutated"

	fresh, ok := store.ByID(pets[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "Mutated", fresh.Name)
}

func TestSetAdoptionStatus(t *testing.T) {
	store, err := NewSeededStore()
	require.NoError(t, err)
	id := store.All()[0].ID

	require.True(t, store.SetAdoptionStatus(id, StatusPending))
	pet, ok := store.ByID(id)
	require.True(t, ok)
	assert.Equal(t, StatusPending, pet.AdoptionStatus)

	// Unknown ids report failure instead of panicking.
	assert.False(t, store.SetAdoptionStatus("nope", StatusAdopted))
}

func TestAddApplicationDefaults(t *testing.T) {
	store, err := NewStore(SeedPets(), WithClock(fixedClock()))
	require.NoError(t, err)

	app := store.AddApplication(AdoptionApplication{PetName: "Bella"})
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, AppReviewing, app.Status)
	assert.Equal(t, "2025-06-01", app.Date)

	second := store.AddApplication(AdoptionApplication{PetName: "Mochi", Status: AppInterview})
	assert.Equal(t, AppInterview, second.Status)

	apps := store.Applications()
	require.Len(t, apps, 2)
	assert.Equal(t, "Mochi", apps[0].PetName, "newest application leads the list")
}

func TestToggleLike(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	post := store.AddPost(FeedPost{Author: "You", Content: "hello", Likes: 3})
	store.ToggleLike(post.ID)
	assert.Equal(t, 4, store.Posts()[0].Likes)
	assert.True(t, store.Posts()[0].Liked)

	store.ToggleLike(post.ID)
	assert.Equal(t, 3, store.Posts()[0].Likes)
	assert.False(t, store.Posts()[0].Liked)
}

func TestAddMessageUpdatesThreadPreview(t *testing.T) {
	store, err := NewSeededStore(WithClock(fixedClock()))
	require.NoError(t, err)
	thread := store.Threads()[0]

	msg := store.AddMessage(ChatMessage{ThreadID: thread.ID, SenderID: "me", Text: "hi", IsMe: true})
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "12:00 PM", msg.Time)

	updated, ok := store.Thread(thread.ID)
	require.True(t, ok)
	assert.Equal(t, "hi", updated.LastMsg)

	msgs := store.Messages(thread.ID)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsMe)
}

type recordingJournal struct {
	posts    []FeedPost
	apps     []AdoptionApplication
	messages []ChatMessage
	err      error
}

func (j *recordingJournal) SavePost(p FeedPost) error {
	j.posts = append(j.posts, p)
	return j.err
}

func (j *recordingJournal) SaveApplication(a AdoptionApplication) error {
	j.apps = append(j.apps, a)
	return j.err
}

func (j *recordingJournal) SaveMessage(m ChatMessage) error {
	j.messages = append(j.messages, m)
	return j.err
}

func TestJournalWriteThrough(t *testing.T) {
	jnl := &recordingJournal{}
	store, err := NewSeededStore(WithJournal(jnl))
	require.NoError(t, err)

	post := store.AddPost(FeedPost{Author: "You", Content: "hello"})
	app := store.AddApplication(AdoptionApplication{PetName: "Bella"})
	msg := store.AddMessage(ChatMessage{ThreadID: store.Threads()[0].ID, Text: "hi"})

	require.Len(t, jnl.posts, 1)
	assert.Equal(t, post.ID, jnl.posts[0].ID)
	require.Len(t, jnl.apps, 1)
	assert.Equal(t, app.ID, jnl.apps[0].ID)
	require.Len(t, jnl.messages, 1)
	assert.Equal(t, msg.ID, jnl.messages[0].ID)
}

func TestJournalFailureDoesNotBlockInsert(t *testing.T) {
	jnl := &recordingJournal{err: errors.New("disk full")}
	store, err := NewSeededStore(WithJournal(jnl))
	require.NoError(t, err)

	store.AddPost(FeedPost{Author: "You", Content: "still here"})
	require.Len(t, store.Posts(), 1)
}

func TestRestoreDerivedPreservesIDs(t *testing.T) {
	store, err := NewSeededStore()
	require.NoError(t, err)
	seeded := len(store.Applications())
	thread := store.Threads()[0]

	store.RestoreDerived(
		[]FeedPost{{ID: "post-1", Author: "You", Content: "restored"}},
		[]AdoptionApplication{{ID: "app-1", PetName: "Bella", Status: AppApproved}},
		[]ChatMessage{{ID: "msg-1", ThreadID: thread.ID, Text: "restored"}},
	)

	posts := store.Posts()
	require.NotEmpty(t, posts)
	assert.Equal(t, "post-1", posts[0].ID, "restored records lead, seed history follows")

	apps := store.Applications()
	require.Len(t, apps, seeded+1)
	assert.Equal(t, "app-1", apps[0].ID)

	msgs := store.Messages(thread.ID)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "msg-1", msgs[0].ID)
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in    string
		value string
		unit  string
	}{
		{"2 years", "2", "years"},
		{"3 months", "3", "months"},
		{"5", "5", "Age"},
		{"", "N/A", "Age"},
		{"   ", "N/A", "Age"},
	}
	for _, tt := range tests {
		got := ParseAge(tt.in)
		assert.Equal(t, AgeParts{Value: tt.value, Unit: tt.unit}, got, "input %q", tt.in)
	}
}
