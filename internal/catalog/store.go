package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawpal/internal/logging"
)

// Journal receives write-through copies of derived records so a session can
// be restored after a restart. The in-memory store stays the source of truth;
// journal failures are logged and never block an insert.
type Journal interface {
	SavePost(post FeedPost) error
	SaveApplication(app AdoptionApplication) error
	SaveMessage(msg ChatMessage) error
}

// Store owns the pet catalog and all derived records for one session.
// Catalog order is stable insertion order; derived lists are
// most-recent-first.
type Store struct {
	mu sync.RWMutex

	pets   []Pet
	byID   map[string]int
	now    func() time.Time
	newID  func() string
	journl Journal

	posts        []FeedPost
	applications []AdoptionApplication
	threads      []ChatThread
	messages     map[string][]ChatMessage // threadID -> messages, oldest first
}

// Option configures a Store.
type Option func(*Store)

// WithJournal attaches a write-through journal for derived records.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journl = j }
}

// WithClock overrides the timestamp source. Tests use this to make derived
// record ids deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a store over the given catalog snapshot. Duplicate pet ids
// are rejected: the id is the primary key everything else hangs off.
func NewStore(pets []Pet, opts ...Option) (*Store, error) {
	s := &Store{
		pets:     append([]Pet(nil), pets...),
		byID:     make(map[string]int, len(pets)),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		messages: make(map[string][]ChatMessage),
	}
	for i, p := range s.pets {
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate pet id %q in catalog", p.ID)
		}
		s.byID[p.ID] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	logging.Catalog("store initialized: %d pets", len(s.pets))
	return s, nil
}

// NewSeededStore builds a store over the built-in catalog, threads and
// application history.
func NewSeededStore(opts ...Option) (*Store, error) {
	s, err := NewStore(SeedPets(), opts...)
	if err != nil {
		return nil, err
	}
	s.threads = SeedThreads()
	s.applications = SeedApplications()
	return s, nil
}

// All returns the catalog in stable insertion order. The returned slice is a
// copy; callers cannot mutate the store through it.
func (s *Store) All() []Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Pet(nil), s.pets...)
}

// ByID looks a pet up by primary key.
func (s *Store) ByID(id string) (Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Pet{}, false
	}
	return s.pets[i], true
}

// SetAdoptionStatus updates a pet's adoption status. Transitions are not
// guarded; no UI path regresses a status today, and a shelter backend may
// legitimately need to reopen a fallen-through adoption.
func (s *Store) SetAdoptionStatus(id string, status AdoptionStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return false
	}
	s.pets[i].AdoptionStatus = status
	logging.Catalog("pet %s status -> %s", id, status)
	return true
}

// nextID yields a unique derived-record id. Timestamp prefix keeps ids
// roughly sortable; the uuid suffix guarantees uniqueness within a tick.
func (s *Store) nextID() string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), s.newID()[:8])
}

// AddPost prepends a feed post and returns it with its assigned id.
func (s *Store) AddPost(post FeedPost) FeedPost {
	s.mu.Lock()
	post.ID = s.nextID()
	if post.Time == "" {
		post.Time = "Just now"
	}
	s.posts = append([]FeedPost{post}, s.posts...)
	s.mu.Unlock()

	if s.journl != nil {
		if err := s.journl.SavePost(post); err != nil {
			logging.CatalogWarn("journal post %s: %v", post.ID, err)
		}
	}
	return post
}

// Posts returns feed posts, most recent first.
func (s *Store) Posts() []FeedPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FeedPost(nil), s.posts...)
}

// ToggleLike flips the like state on a post and adjusts its count.
func (s *Store) ToggleLike(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].Liked {
			s.posts[i].Liked = false
			s.posts[i].Likes--
		} else {
			s.posts[i].Liked = true
			s.posts[i].Likes++
		}
		return
	}
}

// AddApplication prepends an adoption application and returns it with its id.
func (s *Store) AddApplication(app AdoptionApplication) AdoptionApplication {
	s.mu.Lock()
	app.ID = s.nextID()
	if app.Status == "" {
		app.Status = AppReviewing
	}
	if app.Date == "" {
		app.Date = s.now().Format("2006-01-02")
	}
	s.applications = append([]AdoptionApplication{app}, s.applications...)
	s.mu.Unlock()

	if s.journl != nil {
		if err := s.journl.SaveApplication(app); err != nil {
			logging.CatalogWarn("journal application %s: %v", app.ID, err)
		}
	}
	return app
}

// Applications returns adoption applications, most recent first.
func (s *Store) Applications() []AdoptionApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]AdoptionApplication(nil), s.applications...)
}

// Threads returns chat threads, most recent first.
func (s *Store) Threads() []ChatThread {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ChatThread(nil), s.threads...)
}

// Thread looks a chat thread up by id.
func (s *Store) Thread(id string) (ChatThread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.threads {
		if t.ID == id {
			return t, true
		}
	}
	return ChatThread{}, false
}

// AddMessage appends a message to a thread and updates the thread preview.
func (s *Store) AddMessage(msg ChatMessage) ChatMessage {
	s.mu.Lock()
	msg.ID = s.nextID()
	if msg.Time == "" {
		msg.Time = s.now().Format("3:04 PM")
	}
	s.messages[msg.ThreadID] = append(s.messages[msg.ThreadID], msg)
	for i := range s.threads {
		if s.threads[i].ID == msg.ThreadID {
			s.threads[i].LastMsg = msg.Text
			s.threads[i].Time = msg.Time
			break
		}
	}
	s.mu.Unlock()

	if s.journl != nil {
		if err := s.journl.SaveMessage(msg); err != nil {
			logging.CatalogWarn("journal message %s: %v", msg.ID, err)
		}
	}
	return msg
}

// Messages returns a thread's messages, oldest first.
func (s *Store) Messages(threadID string) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ChatMessage(nil), s.messages[threadID]...)
}

// RestoreDerived loads journaled records back into the store at boot,
// preserving their original ids. Records are assumed already ordered
// most-recent-first by the journal.
func (s *Store) RestoreDerived(posts []FeedPost, apps []AdoptionApplication, msgs []ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(posts, s.posts...)
	s.applications = append(apps, s.applications...)
	for _, m := range msgs {
		s.messages[m.ThreadID] = append(s.messages[m.ThreadID], m)
	}
	logging.Catalog("restored %d posts, %d applications, %d messages from journal",
		len(posts), len(apps), len(msgs))
}
