package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type staticIDGenerator struct {
	ids   []string
	index int
}

func (g *staticIDGenerator) NewID() (string, error) {
	if g.index >= len(g.ids) {
		return "", errors.New("exhausted ids")
	}
	id := g.ids[g.index]
	g.index++
	return id, nil
}

type recordingListener struct {
	mu      sync.Mutex
	changes []Change
}

func (l *recordingListener) EventsChanged(change Change) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, change)
}

func (l *recordingListener) recorded() []Change {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Change(nil), l.changes...)
}

type failingStore struct {
	stored       []MarineEvent
	insertErr    error
	insertAllErr error
	updateErr    error
	deleteErr    error
}

func (s *failingStore) LoadAll(context.Context) ([]MarineEvent, error) {
	return append([]MarineEvent(nil), s.stored...), nil
}

func (s *failingStore) Insert(_ context.Context, event MarineEvent) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.stored = append(s.stored, event)
	return nil
}

func (s *failingStore) InsertAll(_ context.Context, events []MarineEvent) error {
	if s.insertAllErr != nil {
		return s.insertAllErr
	}
	s.stored = append(s.stored, events...)
	return nil
}

func (s *failingStore) Update(context.Context, MarineEvent) error {
	return s.updateErr
}

func (s *failingStore) Delete(context.Context, string) error {
	return s.deleteErr
}

// gatedListener blocks its first notification until release is closed.
type gatedListener struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	inner   *recordingListener
}

func newGatedListener() *gatedListener {
	return &gatedListener{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		inner:   &recordingListener{},
	}
}

func (l *gatedListener) EventsChanged(change Change) {
	first := false
	l.once.Do(func() {
		first = true
	})
	if first {
		close(l.entered)
		<-l.release
	}
	l.inner.EventsChanged(change)
}

func fixedClock() time.Time {
	return time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)
}

func mustDraft(t *testing.T, form CreateForm) Draft {
	t.Helper()
	draft, err := form.Parse()
	if err != nil {
		t.Fatalf("unexpected form error: %v", err)
	}
	return draft
}

func newLoadedService(t *testing.T, ids []string, store Store, listeners ...ChangeListener) *Service {
	t.Helper()
	service, err := NewService(ServiceConfig{
		Store:      store,
		Clock:      fixedClock,
		IDProvider: &staticIDGenerator{ids: ids},
		Listeners:  listeners,
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	if err := service.Load(context.Background(), SampleEvents()); err != nil {
		t.Fatalf("failed to load service: %v", err)
	}
	return service
}

func eventIDs(events []MarineEvent) []string {
	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}
	return ids
}
