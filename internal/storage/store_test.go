package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrusey/llm-council/internal/council"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	conv, err := store.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "New Conversation", conv.Title)
	assert.Empty(t, conv.Messages)

	got, err := store.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRejectsPathEscapes(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"../etc/passwd", "a/b", `a\b`, "a.json", ""} {
		_, err := store.Get(id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
}

func TestAppendMessageRoundTripsCouncilResult(t *testing.T) {
	store := newTestStore(t)
	conv, err := store.Create()
	require.NoError(t, err)

	elapsed := 1.5
	result := &council.Result{
		Stage1: []council.Stage1Result{
			{Model: "model-a", Response: "answer", ResponseTime: &elapsed},
		},
		Stage3: council.Stage3Result{Model: "chairman", Response: "final"},
		Metadata: council.Metadata{
			LabelToModel: map[string]string{"Response A": "model-a"},
		},
	}

	_, err = store.AppendMessage(conv.ID, Message{Role: "user", Content: "question"})
	require.NoError(t, err)
	updated, err := store.AppendMessage(conv.ID, Message{Role: "assistant", Council: result})
	require.NoError(t, err)
	require.Len(t, updated.Messages, 2)

	got, err := store.Get(conv.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "question", got.Messages[0].Content)
	require.NotNil(t, got.Messages[1].Council)
	require.Len(t, got.Messages[1].Council.Stage1, 1)
	require.NotNil(t, got.Messages[1].Council.Stage1[0].ResponseTime)
	assert.Equal(t, 1.5, *got.Messages[1].Council.Stage1[0].ResponseTime)
	assert.False(t, got.Messages[0].CreatedAt.IsZero())
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	store := newTestStore(t)
	conv, err := store.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendMessage(conv.ID, Message{
				Role:    "user",
				Content: fmt.Sprintf("message %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, store.SetTitle(conv.ID, "Concurrent Title"))
	}()
	wg.Wait()

	got, err := store.Get(conv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 20)
	assert.Equal(t, "Concurrent Title", got.Title)
}

func TestSetTitle(t *testing.T) {
	store := newTestStore(t)
	conv, err := store.Create()
	require.NoError(t, err)

	require.NoError(t, store.SetTitle(conv.ID, "Sky Color Physics"))

	got, err := store.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sky Color Physics", got.Title)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Create()
	require.NoError(t, err)
	// Force distinct creation times; file timestamps are not consulted.
	time.Sleep(10 * time.Millisecond)
	second, err := store.Create()
	require.NoError(t, err)

	summaries, err := store.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, second.ID, summaries[0].ID)
	assert.Equal(t, first.ID, summaries[1].ID)
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	conv, err := store.Create()
	require.NoError(t, err)

	require.NoError(t, store.Delete(conv.ID))

	_, err = store.Get(conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(conv.ID), ErrNotFound)
}
