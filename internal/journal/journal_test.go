package journal

import (
	"path/filepath"
	"testing"

	"pawpal/internal/catalog"
)

var _ catalog.Journal = (*SQLiteJournal)(nil)

func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRoundTripThroughStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	store, err := catalog.NewSeededStore(catalog.WithJournal(j))
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	post := store.AddPost(catalog.FeedPost{Author: "Me", Content: "Meet my new friend!"})
	app := store.AddApplication(catalog.AdoptionApplication{PetName: "Bella"})
	threadID := store.Threads()[0].ID
	msg := store.AddMessage(catalog.ChatMessage{ThreadID: threadID, Text: "Is Bella still available?", IsMe: true})
	if err := j.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	// Reopen as a fresh process would and replay into a new store.
	j2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer j2.Close()

	store2, err := catalog.NewSeededStore(catalog.WithJournal(j2))
	if err != nil {
		t.Fatalf("second store: %v", err)
	}
	if err := j2.Restore(store2); err != nil {
		t.Fatalf("restore: %v", err)
	}

	posts := store2.Posts()
	if len(posts) == 0 || posts[0].ID != post.ID || posts[0].Content != post.Content {
		t.Fatalf("restored posts = %+v, want leading %+v", posts, post)
	}
	apps := store2.Applications()
	if len(apps) == 0 || apps[0].ID != app.ID {
		t.Fatalf("restored applications missing %s", app.ID)
	}
	msgs := store2.Messages(threadID)
	if len(msgs) == 0 || msgs[len(msgs)-1].ID != msg.ID {
		t.Fatalf("restored messages = %+v, want trailing %s", msgs, msg.ID)
	}
}

func TestSaveIsIdempotentPerID(t *testing.T) {
	j := openTestJournal(t)

	post := catalog.FeedPost{ID: "p1", Author: "Me", Content: "first"}
	if err := j.SavePost(post); err != nil {
		t.Fatalf("save: %v", err)
	}
	post.Content = "edited"
	if err := j.SavePost(post); err != nil {
		t.Fatalf("second save: %v", err)
	}

	posts, err := j.LoadPosts()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].Content != "edited" {
		t.Fatalf("content = %q, want the replacement", posts[0].Content)
	}
}

func TestEmptyJournalLoads(t *testing.T) {
	j := openTestJournal(t)
	posts, err := j.LoadPosts()
	if err != nil {
		t.Fatalf("load posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}
	msgs, err := j.LoadMessages()
	if err != nil {
		t.Fatalf("load messages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}
