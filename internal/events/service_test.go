package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestServiceCreateAppendsWithDefaults(t *testing.T) {
	listener := &recordingListener{}
	service := newLoadedService(t, []string{"event-4"}, nil, listener)

	draft := mustDraft(t, CreateForm{Name: "Outer Buoy", PinType: "buoy", Latitude: "60.2", Longitude: "24.7"})
	event, err := service.Create(context.Background(), draft, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Status != StatusOrdered {
		t.Fatalf("expected default status, got %s", event.Status)
	}
	if !event.CreatedAt.Equal(fixedClock()) {
		t.Fatalf("unexpected created at %v", event.CreatedAt)
	}
	if service.Len() != 4 {
		t.Fatalf("expected collection to grow by one, got %d", service.Len())
	}
	all := service.List("")
	if all[len(all)-1].ID != "event-4" {
		t.Fatalf("expected new event to be appended last")
	}
	changes := listener.recorded()
	if len(changes) != 1 || changes[0].Kind != ChangeCreated || changes[0].EventID != "event-4" || changes[0].Total != 4 {
		t.Fatalf("unexpected change notifications %+v", changes)
	}
}

func TestServiceCreateSkipsCollidingIDs(t *testing.T) {
	service := newLoadedService(t, []string{"1", "2", "fresh"}, nil)
	draft := mustDraft(t, CreateForm{Name: "x", PinType: "pier", Latitude: "0", Longitude: "0"})
	event, err := service.Create(context.Background(), draft, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "fresh" {
		t.Fatalf("expected colliding ids to be skipped, got %s", event.ID)
	}
}

func TestServiceCreateRejectsInvalidDraft(t *testing.T) {
	service := newLoadedService(t, []string{"event-4"}, nil)
	_, err := service.Create(context.Background(), Draft{Name: " ", PinType: PinTypeBuoy, Status: StatusOrdered}, "")
	if !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "events.create.invalid_event" {
		t.Fatalf("unexpected error code: %v", err)
	}
	if service.Len() != 3 {
		t.Fatalf("collection changed on invalid draft")
	}
}

func TestServiceCreateStoreFailureLeavesCollectionUnchanged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := &failingStore{insertErr: errors.New("disk full")}
	service, err := NewService(ServiceConfig{
		Store:      store,
		Clock:      fixedClock,
		IDProvider: &staticIDGenerator{ids: []string{"event-4"}},
		Logger:     zap.New(core),
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	store.stored = SampleEvents()
	if err := service.Load(context.Background(), nil); err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	draft := mustDraft(t, CreateForm{Name: "x", PinType: "buoy", Latitude: "0", Longitude: "0"})
	_, err = service.Create(context.Background(), draft, "")
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "events.create.store_insert_failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if service.Len() != 3 {
		t.Fatalf("collection changed after store failure")
	}
	errorLogs := logs.FilterMessage("events service error").All()
	if len(errorLogs) != 1 {
		t.Fatalf("expected one error log, got %d", len(errorLogs))
	}
}

func TestServiceUpdateKeepsIdentityFields(t *testing.T) {
	listener := &recordingListener{}
	service := newLoadedService(t, nil, nil, listener)
	original, err := service.Get("2")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}

	name := "Main Pier East"
	status := StatusInvoiced
	latitude := 60.1612
	updated, err := service.Update(context.Background(), "2", Patch{Name: &name, Status: &status, Latitude: &latitude})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.ID != original.ID || !updated.CreatedAt.Equal(original.CreatedAt) || updated.UserID != original.UserID {
		t.Fatalf("identity fields changed: %+v", updated)
	}
	if updated.Name != name || updated.Status != status || updated.Latitude != latitude || updated.Longitude != original.Longitude {
		t.Fatalf("patch not applied: %+v", updated)
	}
	stored, _ := service.Get("2")
	if stored != updated {
		t.Fatalf("collection not updated")
	}
	if got := eventIDs(service.List("")); got[1] != "2" {
		t.Fatalf("update moved the event: %v", got)
	}
	if changes := listener.recorded(); len(changes) != 1 || changes[0].Kind != ChangeUpdated {
		t.Fatalf("unexpected changes %+v", changes)
	}
}

func TestServiceUpdateErrors(t *testing.T) {
	service := newLoadedService(t, nil, nil)
	name := "x"
	if _, err := service.Update(context.Background(), "missing", Patch{Name: &name}); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	badStatus := Status("lost")
	if _, err := service.Update(context.Background(), "1", Patch{Status: &badStatus}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
	badLatitude := 91.0
	if _, err := service.Update(context.Background(), "1", Patch{Latitude: &badLatitude}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
	event, _ := service.Get("1")
	if event.Status != StatusReady || event.Latitude != 60.1699 {
		t.Fatalf("rejected update changed the event: %+v", event)
	}
}

func TestServiceDelete(t *testing.T) {
	listener := &recordingListener{}
	service := newLoadedService(t, nil, nil, listener)

	removed, err := service.Delete(context.Background(), "2")
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	if service.Len() != 2 {
		t.Fatalf("expected size 2, got %d", service.Len())
	}
	if _, err := service.Get("2"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected deleted id to be gone")
	}

	removed, err = service.Delete(context.Background(), "unknown")
	if err != nil || removed {
		t.Fatalf("expected unknown delete to be a no-op, got %v %v", removed, err)
	}
	if service.Len() != 2 {
		t.Fatalf("unknown delete changed size")
	}
	if changes := listener.recorded(); len(changes) != 1 || changes[0].Kind != ChangeDeleted || changes[0].Total != 2 {
		t.Fatalf("unexpected changes %+v", changes)
	}
}

func TestServiceDeleteStoreFailure(t *testing.T) {
	store := &failingStore{deleteErr: errors.New("locked")}
	service := newLoadedService(t, nil, store)
	if _, err := service.Delete(context.Background(), "1"); err == nil {
		t.Fatalf("expected store error")
	}
	if service.Len() != 3 {
		t.Fatalf("collection changed after store failure")
	}
}

func TestServiceLoadSeedsEmptyStore(t *testing.T) {
	store := &failingStore{}
	service := newLoadedService(t, nil, store)
	if len(store.stored) != 3 {
		t.Fatalf("expected seed events to be written, got %d", len(store.stored))
	}
	if service.Len() != 3 {
		t.Fatalf("expected seeded collection")
	}
}

func TestServiceListFilters(t *testing.T) {
	service := newLoadedService(t, nil, nil)
	if got := eventIDs(service.List("pier")); len(got) != 1 || got[0] != "2" {
		t.Fatalf("unexpected filtered ids %v", got)
	}
}

func TestServiceRequiresLoad(t *testing.T) {
	service := &Service{}
	if _, err := service.Create(context.Background(), Draft{Name: "x", PinType: PinTypeBuoy, Status: StatusOrdered}, ""); err == nil {
		t.Fatalf("expected error before load")
	}
	var serviceErr *ServiceError
	_, err := service.Delete(context.Background(), "1")
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "events.delete.not_loaded" {
		t.Fatalf("unexpected error %v", err)
	}
	if len(service.List("")) != 0 {
		t.Fatalf("expected empty list before load")
	}
}

func TestNewServiceRequiresIDProvider(t *testing.T) {
	if _, err := NewService(ServiceConfig{}); err == nil {
		t.Fatalf("expected missing id provider error")
	}
}

func TestServiceNotifiesInCommitOrder(t *testing.T) {
	listener := newGatedListener()
	service := newLoadedService(t, []string{"event-4", "event-5"}, nil, listener)
	draft := mustDraft(t, CreateForm{Name: "Ordered", PinType: "buoy", Latitude: "60", Longitude: "24"})

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Create(context.Background(), draft, "")
		firstDone <- err
	}()
	<-listener.entered

	secondDone := make(chan error, 1)
	go func() {
		_, err := service.Create(context.Background(), draft, "")
		secondDone <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(listener.release)

	for _, done := range []chan error{firstDone, secondDone} {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("unexpected create error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("create did not finish")
		}
	}

	changes := listener.inner.recorded()
	if len(changes) != 2 {
		t.Fatalf("expected two notifications, got %+v", changes)
	}
	if changes[0].Total != 4 || changes[0].EventID != "event-4" || changes[1].Total != 5 || changes[1].EventID != "event-5" {
		t.Fatalf("notifications out of commit order: %+v", changes)
	}
}

func TestServiceCreateDefaultsBlankStatus(t *testing.T) {
	service := newLoadedService(t, []string{"event-4"}, nil)
	event, err := service.Create(context.Background(), Draft{
		Name:      "Default Status",
		PinType:   PinTypePier,
		Latitude:  60.1,
		Longitude: 24.9,
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Status != DefaultStatus {
		t.Fatalf("expected %s, got %s", DefaultStatus, event.Status)
	}
}

func TestServiceLoadSeedFailureWritesNothing(t *testing.T) {
	store := &failingStore{insertAllErr: errors.New("constraint violated")}
	service, err := NewService(ServiceConfig{
		Store:      store,
		IDProvider: &staticIDGenerator{},
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	err = service.Load(context.Background(), SampleEvents())
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "events.load.seed_insert_failed" {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.stored) != 0 {
		t.Fatalf("expected no seed rows, got %d", len(store.stored))
	}
	if service.Len() != 0 {
		t.Fatalf("expected collection to stay unloaded")
	}
}
