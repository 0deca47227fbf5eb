package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	_ "modernc.org/sqlite"

	"github.com/avoronov/chessmentor/internal/model"
)

// ErrMalformed marks a persisted collection that cannot be decoded or fails
// validation. The operation that hit it fails; Reset on the collection is
// the recovery path.
var ErrMalformed = errors.New("malformed persisted data")

// Persisted collection names.
const (
	CollectionTeachers      = "teachers"
	CollectionRooms         = "rooms"
	CollectionRequests      = "requests"
	CollectionMessages      = "messages"
	CollectionNotifications = "notifications"
)

// Store keeps every collection as one JSON blob in a local sqlite file.
// Writes replace a collection wholesale; merge logic lives in the services.
type Store struct {
	db       *sql.DB
	validate *validator.Validate
}

// Open opens the sqlite file and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	mg, err := NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := mg.Run(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, validate: validator.New()}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset drops a stored collection. Reads after Reset see the empty
// collection again, which is how malformed data is recovered from.
func (s *Store) Reset(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
		return fmt.Errorf("reset collection %s: %w", name, err)
	}
	return nil
}

// Teachers reads the teacher collection; nil when nothing is stored yet.
func (s *Store) Teachers(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	if err := s.read(ctx, CollectionTeachers, &teachers); err != nil {
		return nil, err
	}
	for i := range teachers {
		if err := s.checkRecord(CollectionTeachers, teachers[i]); err != nil {
			return nil, err
		}
	}
	return teachers, nil
}

// SaveTeachers replaces the stored teacher collection.
func (s *Store) SaveTeachers(ctx context.Context, teachers []model.Teacher) error {
	for i := range teachers {
		if err := s.checkRecord(CollectionTeachers, teachers[i]); err != nil {
			return err
		}
	}
	return s.write(ctx, CollectionTeachers, teachers)
}

// Rooms reads the room collection keyed by room id; nil when nothing is
// stored yet.
func (s *Store) Rooms(ctx context.Context) (map[string]model.Room, error) {
	var rooms map[string]model.Room
	if err := s.read(ctx, CollectionRooms, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SaveRooms replaces the stored room collection.
func (s *Store) SaveRooms(ctx context.Context, rooms map[string]model.Room) error {
	return s.write(ctx, CollectionRooms, rooms)
}

// Requests reads the access-request collection.
func (s *Store) Requests(ctx context.Context) ([]model.Request, error) {
	var requests []model.Request
	if err := s.read(ctx, CollectionRequests, &requests); err != nil {
		return nil, err
	}
	for i := range requests {
		if err := s.checkRecord(CollectionRequests, requests[i]); err != nil {
			return nil, err
		}
	}
	return requests, nil
}

// SaveRequests replaces the stored access-request collection.
func (s *Store) SaveRequests(ctx context.Context, requests []model.Request) error {
	for i := range requests {
		if err := s.checkRecord(CollectionRequests, requests[i]); err != nil {
			return err
		}
	}
	return s.write(ctx, CollectionRequests, requests)
}

// Messages reads the chat-message collection.
func (s *Store) Messages(ctx context.Context) ([]model.Message, error) {
	var messages []model.Message
	if err := s.read(ctx, CollectionMessages, &messages); err != nil {
		return nil, err
	}
	for i := range messages {
		if err := s.checkRecord(CollectionMessages, messages[i]); err != nil {
			return nil, err
		}
	}
	return messages, nil
}

// SaveMessages replaces the stored chat-message collection.
func (s *Store) SaveMessages(ctx context.Context, messages []model.Message) error {
	for i := range messages {
		if err := s.checkRecord(CollectionMessages, messages[i]); err != nil {
			return err
		}
	}
	return s.write(ctx, CollectionMessages, messages)
}

// Notifications reads the notification collection.
func (s *Store) Notifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := s.read(ctx, CollectionNotifications, &notifications); err != nil {
		return nil, err
	}
	for i := range notifications {
		if err := s.checkRecord(CollectionNotifications, notifications[i]); err != nil {
			return nil, err
		}
	}
	return notifications, nil
}

// SaveNotifications replaces the stored notification collection.
func (s *Store) SaveNotifications(ctx context.Context, notifications []model.Notification) error {
	for i := range notifications {
		if err := s.checkRecord(CollectionNotifications, notifications[i]); err != nil {
			return err
		}
	}
	return s.write(ctx, CollectionNotifications, notifications)
}

// read decodes a collection blob into dest. A missing row leaves dest at
// its zero value, which is the empty collection.
func (s *Store) read(ctx context.Context, name string, dest any) error {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("%w: collection %s: %v", ErrMalformed, name, err)
	}

	return nil
}

// write replaces a collection blob wholesale.
func (s *Store) write(ctx context.Context, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, name, string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}

	return nil
}

// checkRecord validates one record at the storage boundary. A record that
// decodes but fails validation is the same malformed condition as a decode
// failure.
func (s *Store) checkRecord(name string, record any) error {
	if err := s.validate.Struct(record); err != nil {
		return fmt.Errorf("%w: collection %s: %v", ErrMalformed, name, err)
	}
	return nil
}
