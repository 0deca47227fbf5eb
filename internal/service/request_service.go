package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/model"
	"github.com/avoronov/chessmentor/internal/storage"
)

// RequestWorkflow governs a student's access request to a teacher. Creation
// is idempotent per (student, teacher) pair; terminal statuses are frozen.
type RequestWorkflow struct {
	store    *storage.Store
	messages *MessageLog
	logger   *zap.Logger
}

func NewRequestWorkflow(store *storage.Store, messages *MessageLog, logger *zap.Logger) *RequestWorkflow {
	return &RequestWorkflow{
		store:    store,
		messages: messages,
		logger:   logger,
	}
}

// Create opens a pending request for the pair. When one already exists it
// is returned unchanged; either way a non-empty message is appended to the
// pair's conversation.
func (w *RequestWorkflow) Create(ctx context.Context, studentID, teacherID, message string) (*model.Request, error) {
	requests, err := w.store.Requests(ctx)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for i := range requests {
		if requests[i].StudentID != studentID || requests[i].TeacherID != teacherID {
			continue
		}

		// duplicate creation collapses to a message append
		if message != "" {
			if _, err := w.messages.Append(ctx, studentID, teacherID, message, model.SenderStudent); err != nil {
				return nil, err
			}
		}

		existing := requests[i]
		return &existing, nil
	}

	req := model.Request{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TeacherID: teacherID,
		Status:    model.RequestStatusPending,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	requests = append(requests, req)
	if err := w.store.SaveRequests(ctx, requests); err != nil {
		return nil, fmt.Errorf("save requests: %w", err)
	}

	if message != "" {
		if _, err := w.messages.Append(ctx, studentID, teacherID, message, model.SenderStudent); err != nil {
			return nil, err
		}
	}

	w.logger.Info("access request created",
		zap.String("student_id", studentID),
		zap.String("teacher_id", teacherID))

	return &req, nil
}

// GetStatus returns the pair's request status; found is false when no
// request exists.
func (w *RequestWorkflow) GetStatus(ctx context.Context, studentID, teacherID string) (model.RequestStatus, bool, error) {
	requests, err := w.store.Requests(ctx)
	if err != nil {
		return "", false, fmt.Errorf("get request status: %w", err)
	}

	for i := range requests {
		if requests[i].StudentID == studentID && requests[i].TeacherID == teacherID {
			return requests[i].Status, true, nil
		}
	}

	return "", false, nil
}

// ListPending returns the teacher's open requests.
func (w *RequestWorkflow) ListPending(ctx context.Context, teacherID string) ([]model.Request, error) {
	requests, err := w.store.Requests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}

	var pending []model.Request
	for _, req := range requests {
		if req.TeacherID == teacherID && req.IsPending() {
			pending = append(pending, req)
		}
	}

	return pending, nil
}

// SetStatus overwrites the pair's request status. It reports false when no
// request exists or the current status is terminal; rewriting the current
// status is a successful no-op.
func (w *RequestWorkflow) SetStatus(ctx context.Context, studentID, teacherID string, status model.RequestStatus) (bool, error) {
	requests, err := w.store.Requests(ctx)
	if err != nil {
		return false, fmt.Errorf("set request status: %w", err)
	}

	for i := range requests {
		if requests[i].StudentID != studentID || requests[i].TeacherID != teacherID {
			continue
		}

		if requests[i].Status == status {
			return true, nil
		}
		if requests[i].Status.Terminal() {
			return false, nil
		}

		requests[i].Status = status
		if err := w.store.SaveRequests(ctx, requests); err != nil {
			return false, fmt.Errorf("save requests: %w", err)
		}

		w.logger.Info("access request resolved",
			zap.String("student_id", studentID),
			zap.String("teacher_id", teacherID),
			zap.String("status", string(status)))

		return true, nil
	}

	return false, nil
}
