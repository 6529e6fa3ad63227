package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errMissingIDProvider = errors.New("id provider is required")
	errNotLoaded         = errors.New("event collection is not loaded")
	noOpLogger           = zap.NewNop()
)

const maxIDAttempts = 3

type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

const (
	opServiceNew = "events.service.new"
	opLoad       = "events.load"
	opCreate     = "events.create"
	opUpdate     = "events.update"
	opDelete     = "events.delete"
	opGet        = "events.get"
)

func newServiceError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &ServiceError{code: code, err: cause}
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes a committed mutation of the collection.
type Change struct {
	Kind      ChangeKind
	EventID   string
	Total     int
	Timestamp time.Time
}

// ChangeListener is notified after every committed mutation. Notifications
// are delivered in commit order while the service write lock is held, so
// listeners must not block or call back into the Service.
type ChangeListener interface {
	EventsChanged(change Change)
}

type ServiceConfig struct {
	Store      Store
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
	Listeners  []ChangeListener
}

// Service owns the event collection and routes every mutation through a named
// operation. Without a Store the collection lives only in process memory.
type Service struct {
	mu         sync.RWMutex
	collection *Collection
	store      Store
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger
	listeners  []ChangeListener
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.IDProvider == nil {
		return nil, newServiceError(opServiceNew, "missing_id_provider", errMissingIDProvider)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{
		store:      cfg.Store,
		clock:      clock,
		idProvider: cfg.IDProvider,
		logger:     logger,
		listeners:  append([]ChangeListener(nil), cfg.Listeners...),
	}, nil
}

// Load fills the collection from the store. When nothing is stored the seed
// events are used, and written to the store if there is one.
func (s *Service) Load(ctx context.Context, seed []MarineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	initial := seed
	if s.store != nil {
		stored, err := s.store.LoadAll(ctx)
		if err != nil {
			s.logError(opLoad, "store_load_failed", err)
			return newServiceError(opLoad, "store_load_failed", err)
		}
		if len(stored) > 0 {
			initial = stored
		} else if len(seed) > 0 {
			if err := s.store.InsertAll(ctx, seed); err != nil {
				s.logError(opLoad, "seed_insert_failed", err, zap.Int("events", len(seed)))
				return newServiceError(opLoad, "seed_insert_failed", err)
			}
		}
	}

	collection, err := NewCollection(initial...)
	if err != nil {
		s.logError(opLoad, "invalid_initial_events", err)
		return newServiceError(opLoad, "invalid_initial_events", err)
	}
	s.collection = collection
	s.loggerOrDefault().Info("event collection loaded", zap.Int("events", collection.Len()))
	return nil
}

// Create assigns an id and creation time to the draft and appends it. A blank
// status becomes DefaultStatus. userID is recorded as-is and may be empty.
func (s *Service) Create(ctx context.Context, draft Draft, userID string) (MarineEvent, error) {
	if draft.Status == "" {
		draft.Status = DefaultStatus
	}
	if err := draft.Validate(); err != nil {
		return MarineEvent{}, newServiceError(opCreate, "invalid_event", err)
	}
	name, _ := normalizeName(draft.Name)

	s.mu.Lock()
	if s.collection == nil {
		s.mu.Unlock()
		s.logError(opCreate, "not_loaded", errNotLoaded)
		return MarineEvent{}, newServiceError(opCreate, "not_loaded", errNotLoaded)
	}

	id, err := s.nextID()
	if err != nil {
		s.mu.Unlock()
		s.logError(opCreate, "id_generation_failed", err)
		return MarineEvent{}, newServiceError(opCreate, "id_generation_failed", err)
	}

	event := MarineEvent{
		ID:        id,
		Name:      name,
		PinType:   draft.PinType,
		Status:    draft.Status,
		Latitude:  draft.Latitude,
		Longitude: draft.Longitude,
		CreatedAt: s.clock().UTC(),
		UserID:    userID,
	}

	if s.store != nil {
		if err := s.store.Insert(ctx, event); err != nil {
			s.mu.Unlock()
			s.logError(opCreate, "store_insert_failed", err, zap.String("event_id", event.ID))
			return MarineEvent{}, newServiceError(opCreate, "store_insert_failed", err)
		}
	}
	if err := s.collection.Add(event); err != nil {
		s.mu.Unlock()
		s.logError(opCreate, "collection_add_failed", err, zap.String("event_id", event.ID))
		return MarineEvent{}, newServiceError(opCreate, "collection_add_failed", err)
	}
	change := s.changeLocked(ChangeCreated, event.ID)
	s.notify(change)
	s.mu.Unlock()
	return event, nil
}

// Update applies an edit. The id, creation time and user id never change.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (MarineEvent, error) {
	s.mu.Lock()
	if s.collection == nil {
		s.mu.Unlock()
		s.logError(opUpdate, "not_loaded", errNotLoaded)
		return MarineEvent{}, newServiceError(opUpdate, "not_loaded", errNotLoaded)
	}

	existing, ok := s.collection.Get(id)
	if !ok {
		s.mu.Unlock()
		return MarineEvent{}, newServiceError(opUpdate, "not_found", fmt.Errorf("%w: %s", ErrEventNotFound, id))
	}
	updated, err := patch.applyTo(existing)
	if err != nil {
		s.mu.Unlock()
		return MarineEvent{}, newServiceError(opUpdate, "invalid_event", err)
	}
	if patch.Empty() {
		s.mu.Unlock()
		return existing, nil
	}

	if s.store != nil {
		if err := s.store.Update(ctx, updated); err != nil {
			s.mu.Unlock()
			s.logError(opUpdate, "store_update_failed", err, zap.String("event_id", id))
			return MarineEvent{}, newServiceError(opUpdate, "store_update_failed", err)
		}
	}
	if err := s.collection.Replace(updated); err != nil {
		s.mu.Unlock()
		s.logError(opUpdate, "collection_replace_failed", err, zap.String("event_id", id))
		return MarineEvent{}, newServiceError(opUpdate, "collection_replace_failed", err)
	}
	change := s.changeLocked(ChangeUpdated, id)
	s.notify(change)
	s.mu.Unlock()
	return updated, nil
}

// Delete removes the event and reports whether it existed. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if s.collection == nil {
		s.mu.Unlock()
		s.logError(opDelete, "not_loaded", errNotLoaded)
		return false, newServiceError(opDelete, "not_loaded", errNotLoaded)
	}
	if _, ok := s.collection.Get(id); !ok {
		s.mu.Unlock()
		return false, nil
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, id); err != nil {
			s.mu.Unlock()
			s.logError(opDelete, "store_delete_failed", err, zap.String("event_id", id))
			return false, newServiceError(opDelete, "store_delete_failed", err)
		}
	}
	s.collection.Remove(id)
	change := s.changeLocked(ChangeDeleted, id)
	s.notify(change)
	s.mu.Unlock()
	return true, nil
}

// Get returns a single event.
func (s *Service) Get(id string) (MarineEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return MarineEvent{}, newServiceError(opGet, "not_loaded", errNotLoaded)
	}
	event, ok := s.collection.Get(id)
	if !ok {
		return MarineEvent{}, newServiceError(opGet, "not_found", fmt.Errorf("%w: %s", ErrEventNotFound, id))
	}
	return event, nil
}

// List returns the events matching the query in insertion order.
func (s *Service) List(query string) []MarineEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return []MarineEvent{}
	}
	return Filter(s.collection.Snapshot(), query)
}

// Len returns the size of the unfiltered collection.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.collection == nil {
		return 0
	}
	return s.collection.Len()
}

func (s *Service) nextID() (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		raw, err := s.idProvider.NewID()
		if err != nil {
			lastErr = err
			continue
		}
		id, err := NewEventID(raw)
		if err != nil {
			lastErr = err
			continue
		}
		if _, taken := s.collection.Get(id); taken {
			lastErr = fmt.Errorf("%w: %s", ErrDuplicateID, id)
			continue
		}
		return id, nil
	}
	return "", lastErr
}

func (s *Service) changeLocked(kind ChangeKind, id string) Change {
	return Change{
		Kind:      kind,
		EventID:   id,
		Total:     s.collection.Len(),
		Timestamp: s.clock().UTC(),
	}
}

func (s *Service) notify(change Change) {
	s.loggerOrDefault().Debug("event collection changed",
		zap.String("kind", string(change.Kind)),
		zap.String("event_id", change.EventID),
		zap.Int("total", change.Total))
	for _, listener := range s.listeners {
		listener.EventsChanged(change)
	}
}

func (s *Service) loggerOrDefault() *zap.Logger {
	if s == nil {
		return noOpLogger
	}
	if s.logger == nil {
		return noOpLogger
	}
	return s.logger
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.loggerOrDefault().Error("events service error", attrs...)
}
