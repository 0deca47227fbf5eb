package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/chessmentor/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "core.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreReadsEmptyCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	teachers, err := store.Teachers(ctx)
	require.NoError(t, err)
	assert.Empty(t, teachers)

	rooms, err := store.Rooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	messages, err := store.Messages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestStoreTeacherRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := []model.Teacher{{
		ID:          "t1",
		Name:        "Teacher A",
		Rating:      2300,
		Price:       4000,
		Classes:     12,
		Earnings:    48000,
		Description: "solid fundamentals",
		Tags:        []string{"Beginner", "Tactics"},
		Style:       "patient",
		Curriculum:  "openings first",
	}}
	require.NoError(t, store.SaveTeachers(ctx, saved))

	loaded, err := store.Teachers(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStoreRoomRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := map[string]model.Room{
		"r1": {
			Fen:         "8/8/8/8/8/8/8/8 w - - 0 1",
			History:     []string{"e4", "e5"},
			Chapters:    []model.Chapter{{Name: "Intro", Fen: "start", Annotation: "warmup"}},
			Annotations: map[int]string{0: "book move"},
		},
	}
	require.NoError(t, store.SaveRooms(ctx, saved))

	loaded, err := store.Rooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestStoreRequestAndMessageRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	requests := []model.Request{{
		ID:        "req-1",
		StudentID: "s1",
		TeacherID: "t1",
		Status:    model.RequestStatusPending,
		Message:   "hi",
		CreatedAt: created,
	}}
	require.NoError(t, store.SaveRequests(ctx, requests))

	messages := []model.Message{{
		ID:        "m1",
		StudentID: "s1",
		TeacherID: "t1",
		Sender:    model.SenderStudent,
		Text:      "hello",
		CreatedAt: created,
	}}
	require.NoError(t, store.SaveMessages(ctx, messages))

	loadedRequests, err := store.Requests(ctx)
	require.NoError(t, err)
	assert.Equal(t, requests, loadedRequests)

	loadedMessages, err := store.Messages(ctx)
	require.NoError(t, err)
	assert.Equal(t, messages, loadedMessages)
}

func TestStoreWriteReplacesCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []model.Teacher{{ID: "t1", Name: "Teacher A"}, {ID: "t2", Name: "Teacher B"}}
	require.NoError(t, store.SaveTeachers(ctx, first))

	second := []model.Teacher{{ID: "t3", Name: "Teacher C"}}
	require.NoError(t, store.SaveTeachers(ctx, second))

	loaded, err := store.Teachers(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestStoreRejectsInvalidRecordOnSave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveTeachers(ctx, []model.Teacher{{ID: "", Name: "nameless"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestStoreMalformedBlobAndReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)`,
		CollectionTeachers, "{not json", time.Now().UnixMilli())
	require.NoError(t, err)

	_, err = store.Teachers(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)

	require.NoError(t, store.Reset(ctx, CollectionTeachers))

	teachers, err := store.Teachers(ctx)
	require.NoError(t, err)
	assert.Empty(t, teachers)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.db")
	ctx := context.Background()

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.SaveTeachers(ctx, []model.Teacher{{ID: "t1", Name: "Teacher A"}}))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	teachers, err := reopened.Teachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "t1", teachers[0].ID)
}
