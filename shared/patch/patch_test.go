package patch_test

import (
	"encoding/json"
	"testing"
	"todoapp/shared/patch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title       patch.Field[string] `json:"title,omitzero"`
	Description patch.Field[string] `json:"description,omitzero"`
	Completed   patch.Field[bool]   `json:"completed,omitzero"`
}

func TestField_Unmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNull    bool
		wantValue   string
	}{
		{
			name:        "omitted",
			body:        `{}`,
			wantPresent: false,
		},
		{
			name:        "explicit null",
			body:        `{"description": null}`,
			wantPresent: true,
			wantNull:    true,
		},
		{
			name:        "value",
			body:        `{"description": "buy milk"}`,
			wantPresent: true,
			wantValue:   "buy milk",
		},
		{
			name:        "empty string is a value, not null",
			body:        `{"description": ""}`,
			wantPresent: true,
			wantValue:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.wantPresent, p.Description.Present())
			assert.Equal(t, tt.wantNull, p.Description.Null())
			assert.Equal(t, tt.wantValue, p.Description.Value())
		})
	}
}

func TestField_UnmarshalBool(t *testing.T) {
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"completed": false}`), &p))

	assert.True(t, p.Completed.Present())
	assert.False(t, p.Completed.Null())
	assert.False(t, p.Completed.Value())
}

func TestField_MarshalRoundTrip(t *testing.T) {
	p := payload{
		Description: patch.Null[string](),
		Completed:   patch.Set(true),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	// Title was never set and must vanish from the wire entirely.
	assert.JSONEq(t, `{"description": null, "completed": true}`, string(data))

	var back payload
	require.NoError(t, json.Unmarshal(data, &back))

	assert.False(t, back.Title.Present())
	assert.True(t, back.Description.Null())
	assert.True(t, back.Completed.Value())
}
