package event

import "github.com/avoronov/chessmentor/internal/model"

// Event names published by the state core.
const (
	RoomChangedEvent = "room-changed"
	ChatChangedEvent = "chat-changed"
)

// RoomChanged carries the full post-merge room state for one room.
type RoomChanged struct {
	RoomID string
	Room   model.Room
}

// ChatChanged identifies the conversation whose log grew.
type ChatChanged struct {
	StudentID string
	TeacherID string
}
