package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/event"
	"github.com/avoronov/chessmentor/internal/model"
	"github.com/avoronov/chessmentor/internal/storage"
)

// RoomStateManager owns the mutable session state of every room. Updates
// are shallow merges; every persisted merge is broadcast on the bus.
type RoomStateManager struct {
	store  *storage.Store
	bus    *event.Bus
	logger *zap.Logger
}

func NewRoomStateManager(store *storage.Store, bus *event.Bus, logger *zap.Logger) *RoomStateManager {
	return &RoomStateManager{
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// Get returns the room state, or nil if the room was never written.
func (m *RoomStateManager) Get(ctx context.Context, roomID string) (*model.Room, error) {
	rooms, err := m.store.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	room, ok := rooms[roomID]
	if !ok {
		return nil, nil
	}

	return &room, nil
}

// Update merges patch into the room, creating it on first write, persists
// the collection and publishes the merged state.
func (m *RoomStateManager) Update(ctx context.Context, roomID string, patch model.RoomPatch) (*model.Room, error) {
	rooms, err := m.store.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	if rooms == nil {
		rooms = make(map[string]model.Room)
	}

	room := rooms[roomID]
	patch.Apply(&room)
	rooms[roomID] = room

	if err := m.store.SaveRooms(ctx, rooms); err != nil {
		return nil, fmt.Errorf("save rooms: %w", err)
	}

	m.bus.Publish(event.RoomChangedEvent, event.RoomChanged{RoomID: roomID, Room: room})

	return &room, nil
}

// Subscribe registers onChange for one room. When the room already has
// state, onChange runs once with it immediately, then again after every
// matching update until the returned function is called.
func (m *RoomStateManager) Subscribe(ctx context.Context, roomID string, onChange func(model.Room)) (func(), error) {
	current, err := m.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	unsubscribe := m.bus.Subscribe(event.RoomChangedEvent, func(payload any) {
		changed, ok := payload.(event.RoomChanged)
		if !ok || changed.RoomID != roomID {
			return
		}
		onChange(changed.Room)
	})

	if current != nil {
		onChange(*current)
	}

	return unsubscribe, nil
}
