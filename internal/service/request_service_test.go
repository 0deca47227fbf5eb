package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/model"
)

func newTestWorkflow(t *testing.T) (*RequestWorkflow, *MessageLog) {
	t.Helper()
	store := newTestStore(t)
	messages := NewMessageLog(store, newTestBus(), zap.NewNop())
	return NewRequestWorkflow(store, messages, zap.NewNop()), messages
}

func TestRequestCreateStartsPending(t *testing.T) {
	workflow, _ := newTestWorkflow(t)
	ctx := context.Background()

	req, err := workflow.Create(ctx, "s1", "t1", "may I join?")
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.NotEmpty(t, req.ID)
	assert.True(t, req.IsPending())

	status, found, err := workflow.GetStatus(ctx, "s1", "t1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.RequestStatusPending, status)
}

func TestRequestCreateIsIdempotent(t *testing.T) {
	workflow, messages := newTestWorkflow(t)
	ctx := context.Background()

	first, err := workflow.Create(ctx, "s1", "t1", "message one")
	require.NoError(t, err)

	second, err := workflow.Create(ctx, "s1", "t1", "message two")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "duplicate creation returns the stored request")

	pending, err := workflow.ListPending(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	conversation, err := messages.List(ctx, "s1", "t1")
	require.NoError(t, err)
	require.Len(t, conversation, 2, "both messages land in the conversation")
	assert.Equal(t, "message one", conversation[0].Text)
	assert.Equal(t, "message two", conversation[1].Text)
}

func TestRequestCreateSkipsEmptyMessage(t *testing.T) {
	workflow, messages := newTestWorkflow(t)
	ctx := context.Background()

	_, err := workflow.Create(ctx, "s1", "t1", "")
	require.NoError(t, err)

	conversation, err := messages.List(ctx, "s1", "t1")
	require.NoError(t, err)
	assert.Empty(t, conversation)
}

func TestRequestApproveFlow(t *testing.T) {
	workflow, _ := newTestWorkflow(t)
	ctx := context.Background()

	_, err := workflow.Create(ctx, "s1", "t1", "")
	require.NoError(t, err)

	ok, err := workflow.SetStatus(ctx, "s1", "t1", model.RequestStatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	status, found, err := workflow.GetStatus(ctx, "s1", "t1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.RequestStatusApproved, status)

	pending, err := workflow.ListPending(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRequestTerminalStatusesAreFrozen(t *testing.T) {
	workflow, _ := newTestWorkflow(t)
	ctx := context.Background()

	_, err := workflow.Create(ctx, "s1", "t1", "")
	require.NoError(t, err)

	ok, err := workflow.SetStatus(ctx, "s1", "t1", model.RequestStatusRejected)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = workflow.SetStatus(ctx, "s1", "t1", model.RequestStatusApproved)
	require.NoError(t, err)
	assert.False(t, ok, "a rejected request cannot become approved")

	ok, err = workflow.SetStatus(ctx, "s1", "t1", model.RequestStatusRejected)
	require.NoError(t, err)
	assert.True(t, ok, "rewriting the current status is a no-op success")

	status, _, err := workflow.GetStatus(ctx, "s1", "t1")
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, status)
}

func TestRequestSetStatusMiss(t *testing.T) {
	workflow, _ := newTestWorkflow(t)

	ok, err := workflow.SetStatus(context.Background(), "s1", "t1", model.RequestStatusApproved)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestGetStatusAbsent(t *testing.T) {
	workflow, _ := newTestWorkflow(t)

	_, found, err := workflow.GetStatus(context.Background(), "s1", "t1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRequestListPendingFiltersTeacher(t *testing.T) {
	workflow, _ := newTestWorkflow(t)
	ctx := context.Background()

	_, err := workflow.Create(ctx, "s1", "t1", "")
	require.NoError(t, err)
	_, err = workflow.Create(ctx, "s2", "t1", "")
	require.NoError(t, err)
	_, err = workflow.Create(ctx, "s3", "t2", "")
	require.NoError(t, err)

	ok, err := workflow.SetStatus(ctx, "s2", "t1", model.RequestStatusApproved)
	require.NoError(t, err)
	require.True(t, ok)

	pending, err := workflow.ListPending(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "s1", pending[0].StudentID)
}
