package events

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	databasePath := filepath.Join(t.TempDir(), "events.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&MarineEvent{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func TestGormStoreRoundTripThroughService(t *testing.T) {
	db := newTestDatabase(t)
	store, err := NewGormStore(db)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	service := newLoadedService(t, []string{"event-4"}, store)

	draft := mustDraft(t, CreateForm{Name: "Night Transport", PinType: "transport", Coordinates: "59.9, 24.1"})
	if _, err := service.Create(context.Background(), draft, "user-1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	status := StatusReady
	if _, err := service.Update(context.Background(), "3", Patch{Status: &status}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := service.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	reloaded, err := NewService(ServiceConfig{Store: store, IDProvider: &staticIDGenerator{}})
	if err != nil {
		t.Fatalf("failed to build reloaded service: %v", err)
	}
	if err := reloaded.Load(context.Background(), SampleEvents()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	ids := eventIDs(reloaded.List(""))
	if len(ids) != 3 || ids[0] != "1" || ids[1] != "3" || ids[2] != "event-4" {
		t.Fatalf("unexpected reloaded ids %v", ids)
	}
	transport, err := reloaded.Get("3")
	if err != nil || transport.Status != StatusReady {
		t.Fatalf("status update not persisted: %+v %v", transport, err)
	}
	created, err := reloaded.Get("event-4")
	if err != nil {
		t.Fatalf("created event missing: %v", err)
	}
	if created.UserID != "user-1" || created.Latitude != 59.9 || created.Longitude != 24.1 {
		t.Fatalf("unexpected persisted event %+v", created)
	}
}

func TestGormStoreUpdateUnknownEvent(t *testing.T) {
	store, err := NewGormStore(newTestDatabase(t))
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	err = store.Update(context.Background(), MarineEvent{ID: "missing", Name: "x", PinType: PinTypeBuoy, Status: StatusOrdered})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewGormStoreRequiresDatabase(t *testing.T) {
	if _, err := NewGormStore(nil); err == nil {
		t.Fatalf("expected error for nil database")
	}
}

func TestGormStoreInsertAllIsAtomic(t *testing.T) {
	store, err := NewGormStore(newTestDatabase(t))
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	samples := SampleEvents()
	batch := []MarineEvent{samples[0], samples[1], samples[0]}
	if err := store.InsertAll(context.Background(), batch); err == nil {
		t.Fatalf("expected duplicate id to fail the batch")
	}
	stored, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("expected failed batch to write nothing, got %d rows", len(stored))
	}

	if err := store.InsertAll(context.Background(), samples); err != nil {
		t.Fatalf("insert all failed: %v", err)
	}
	stored, err = store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ids := eventIDs(stored); len(ids) != 3 || ids[0] != "1" || ids[2] != "3" {
		t.Fatalf("unexpected stored ids %v", ids)
	}
}
