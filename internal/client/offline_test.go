package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/failure"
	"todoapp/shared/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOffline(t *testing.T) *Offline {
	t.Helper()

	return &Offline{path: filepath.Join(t.TempDir(), "todos.json")}
}

func TestOffline_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("withoutDescription", func(t *testing.T) {
		store := newTestOffline(t)

		got, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk"})

		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		assert.Equal(t, "buy milk", got.Title)
		assert.Nil(t, got.Description)
		assert.False(t, got.Completed)
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	})

	t.Run("emptyDescriptionBecomesNull", func(t *testing.T) {
		store := newTestOffline(t)
		empty := ""

		got, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk", Description: &empty})

		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("assignsDistinctIDs", func(t *testing.T) {
		store := newTestOffline(t)

		first, err := store.Create(ctx, dto.CreateTodoRequest{Title: "first"})
		require.NoError(t, err)

		second, err := store.Create(ctx, dto.CreateTodoRequest{Title: "second"})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestOffline_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("emptyStore", func(t *testing.T) {
		store := newTestOffline(t)

		got, err := store.GetAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("newestFirst", func(t *testing.T) {
		store := newTestOffline(t)

		_, err := store.Create(ctx, dto.CreateTodoRequest{Title: "older"})
		require.NoError(t, err)

		_, err = store.Create(ctx, dto.CreateTodoRequest{Title: "newer"})
		require.NoError(t, err)

		got, err := store.GetAll(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "newer", got[0].Title)
		assert.Equal(t, "older", got[1].Title)
	})
}

func TestOffline_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("titleOnly", func(t *testing.T) {
		store := newTestOffline(t)
		description := "semi-skimmed"

		created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk", Description: &description})
		require.NoError(t, err)

		got, err := store.Update(ctx, created.ID, dto.UpdateTodoRequest{Title: patch.Set("buy oat milk")})

		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, description, *got.Description)
	})

	t.Run("nullClearsDescription", func(t *testing.T) {
		store := newTestOffline(t)
		description := "semi-skimmed"

		created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk", Description: &description})
		require.NoError(t, err)

		got, err := store.Update(ctx, created.ID, dto.UpdateTodoRequest{Description: patch.Null[string]()})

		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("notFound", func(t *testing.T) {
		store := newTestOffline(t)

		_, err := store.Update(ctx, 42, dto.UpdateTodoRequest{Title: patch.Set("nope")})

		assert.True(t, failure.IsNotFound(err))
	})
}

func TestOffline_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("alternates", func(t *testing.T) {
		store := newTestOffline(t)

		created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk"})
		require.NoError(t, err)

		got, err := store.Toggle(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)

		got, err = store.Toggle(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, got.Completed)
	})

	t.Run("notFound", func(t *testing.T) {
		store := newTestOffline(t)

		_, err := store.Toggle(ctx, 42)

		assert.True(t, failure.IsNotFound(err))
		assert.Contains(t, err.Error(), "42")
	})
}

func TestOffline_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestOffline(t)

	created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	got, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Success)

	got, err = store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Success)
}

func TestOffline_PersistsUnderStorageKey(t *testing.T) {
	ctx := context.Background()
	store := newTestOffline(t)

	created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "buy milk"})
	require.NoError(t, err)

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var file map[string][]dto.TodoResponse
	require.NoError(t, json.Unmarshal(raw, &file))
	require.Len(t, file[storageKey], 1)
	assert.Equal(t, created.ID, file[storageKey][0].ID)

	// A fresh instance over the same file sees the same records.
	reopened := &Offline{path: store.path}

	got, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Title)
}

func TestOffline_FullSession(t *testing.T) {
	ctx := context.Background()
	store := newTestOffline(t)

	created, err := store.Create(ctx, dto.CreateTodoRequest{Title: "water the plants"})
	require.NoError(t, err)

	toggled, err := store.Toggle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	updated, err := store.Update(ctx, created.ID, dto.UpdateTodoRequest{Description: patch.Set("the balcony ones")})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "the balcony ones", *updated.Description)
	assert.True(t, updated.Completed)

	deleted, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Success)

	remaining, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
