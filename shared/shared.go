package shared

import (
	"strconv"
	"strings"
	"todoapp/shared/dto"
	"todoapp/shared/failure"
)

func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// ParseID parses a route parameter into a numeric record id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, failure.InvalidIDParam
	}

	return id, nil
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}
