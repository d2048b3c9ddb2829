package dto_test

import (
	"testing"
	"todoapp/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "id",
				Value:    int64(42),
				Operator: dto.FilterOperatorEq,
				Table:    "todos",
			},
			wantWhere: "todos.id = :id",
			wantArgs:  map[string]any{"id": int64(42)},
		},
		{
			name: "eq without table",
			filter: dto.Filter{
				Field:    "completed",
				Value:    true,
				Operator: dto.FilterOperatorEq,
			},
			wantWhere: "completed = :completed",
			wantArgs:  map[string]any{"completed": true},
		},
		{
			name: "is null",
			filter: dto.Filter{
				Field:    "description",
				Operator: dto.FilterIsNull,
				Table:    "todos",
			},
			wantWhere: "todos.description IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "id",
				Operator: "like",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "todos"},
			dto.Filter{Field: "completed", Value: false, Operator: dto.FilterOperatorEq, Table: "todos"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(todos.id = :id AND todos.completed = :completed)", where)
	assert.Equal(t, map[string]any{"id": int64(1), "completed": false}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
