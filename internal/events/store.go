package events

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var errMissingStoreDatabase = errors.New("events: store database handle is required")

// Store persists events. The service keeps its collection authoritative and
// writes through to the store before every in-memory change.
type Store interface {
	LoadAll(ctx context.Context) ([]MarineEvent, error)
	Insert(ctx context.Context, event MarineEvent) error
	InsertAll(ctx context.Context, events []MarineEvent) error
	Update(ctx context.Context, event MarineEvent) error
	Delete(ctx context.Context, id string) error
}

// GormStore stores events in the marine_events table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm handle. The schema is expected to be migrated.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, errMissingStoreDatabase
	}
	return &GormStore{db: db}, nil
}

// LoadAll returns every stored event ordered by creation time.
func (s *GormStore) LoadAll(ctx context.Context) ([]MarineEvent, error) {
	var stored []MarineEvent
	if err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Order("event_id ASC").
		Find(&stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

// Insert creates a row for a new event.
func (s *GormStore) Insert(ctx context.Context, event MarineEvent) error {
	return s.db.WithContext(ctx).Create(&event).Error
}

// InsertAll creates rows for every event in one transaction. Either all rows
// are written or none are.
func (s *GormStore) InsertAll(ctx context.Context, events []MarineEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := append([]MarineEvent(nil), events...)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index := range batch {
			if err := tx.Create(&batch[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update overwrites the mutable columns of an existing event.
func (s *GormStore) Update(ctx context.Context, event MarineEvent) error {
	result := s.db.WithContext(ctx).
		Model(&MarineEvent{}).
		Where("event_id = ?", event.ID).
		Updates(map[string]interface{}{
			"name":      event.Name,
			"pin_type":  event.PinType,
			"status":    event.Status,
			"latitude":  event.Latitude,
			"longitude": event.Longitude,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event row. Missing rows are ignored.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&MarineEvent{}).Error
}
