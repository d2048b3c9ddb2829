package shared_test

import (
	"testing"
	"todoapp/shared"

	"github.com/stretchr/testify/assert"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "limiter:127.0.0.1:curl", shared.BuildCacheKey("limiter", "127.0.0.1", "curl"))
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = shared.ParseID("not-a-number")
	assert.Error(t, err)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID(7, "id", "todos")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(todos.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(7)}, args)
}
