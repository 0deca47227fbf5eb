package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/event"
	"github.com/avoronov/chessmentor/internal/model"
	"github.com/avoronov/chessmentor/internal/storage"
)

// MessageLog is the append-only chat history, one conversation per
// (student, teacher) pair.
type MessageLog struct {
	store  *storage.Store
	bus    *event.Bus
	logger *zap.Logger
}

func NewMessageLog(store *storage.Store, bus *event.Bus, logger *zap.Logger) *MessageLog {
	return &MessageLog{
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// Append stores a new message and broadcasts the conversation change.
func (l *MessageLog) Append(ctx context.Context, studentID, teacherID, text string, sender model.SenderRole) (*model.Message, error) {
	messages, err := l.store.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	msg := model.Message{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TeacherID: teacherID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	messages = append(messages, msg)
	if err := l.store.SaveMessages(ctx, messages); err != nil {
		return nil, fmt.Errorf("save messages: %w", err)
	}

	l.bus.Publish(event.ChatChangedEvent, event.ChatChanged{StudentID: studentID, TeacherID: teacherID})

	return &msg, nil
}

// List returns the conversation ascending by timestamp. The sort is stable,
// so clock ties keep insertion order.
func (l *MessageLog) List(ctx context.Context, studentID, teacherID string) ([]model.Message, error) {
	messages, err := l.store.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	var conversation []model.Message
	for _, msg := range messages {
		if msg.StudentID == studentID && msg.TeacherID == teacherID {
			conversation = append(conversation, msg)
		}
	}

	sort.SliceStable(conversation, func(i, j int) bool {
		return conversation[i].CreatedAt.Before(conversation[j].CreatedAt)
	})

	return conversation, nil
}

// Subscribe invokes onChange with the full, freshly sorted history after
// every append to the pair's conversation. Consumers never merge deltas.
func (l *MessageLog) Subscribe(ctx context.Context, studentID, teacherID string, onChange func([]model.Message)) func() {
	return l.bus.Subscribe(event.ChatChangedEvent, func(payload any) {
		changed, ok := payload.(event.ChatChanged)
		if !ok || changed.StudentID != studentID || changed.TeacherID != teacherID {
			return
		}

		conversation, err := l.List(ctx, studentID, teacherID)
		if err != nil {
			l.logger.Error("reload conversation",
				zap.String("student_id", studentID),
				zap.String("teacher_id", teacherID),
				zap.Error(err))
			return
		}

		onChange(conversation)
	})
}
