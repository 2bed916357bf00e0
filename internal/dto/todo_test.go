package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{
			name:    "key absent",
			body:    `{}`,
			wantSet: false,
		},
		{
			name:    "explicit null",
			body:    `{"description":null}`,
			wantSet: true,
		},
		{
			name:      "string value",
			body:      `{"description":"milk"}`,
			wantSet:   true,
			wantValue: ptr("milk"),
		},
		{
			name:      "empty string is still a value at this layer",
			body:      `{"description":""}`,
			wantSet:   true,
			wantValue: ptr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTodoRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantSet, req.Description.Set)
			if tt.wantValue == nil {
				assert.Nil(t, req.Description.Value)
			} else {
				require.NotNil(t, req.Description.Value)
				assert.Equal(t, *tt.wantValue, *req.Description.Value)
			}
		})
	}

	t.Run("non-string value is an error", func(t *testing.T) {
		var req UpdateTodoRequest
		err := json.Unmarshal([]byte(`{"description":42}`), &req)
		assert.Error(t, err)
	})
}

func TestUpdateTodoRequest_IndependentFields(t *testing.T) {
	body := `{"title":"new title","completed":true}`
	var req UpdateTodoRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Title)
	assert.Equal(t, "new title", *req.Title)
	require.NotNil(t, req.Completed)
	assert.True(t, *req.Completed)
	// description was absent: must not be confused with "clear it".
	assert.False(t, req.Description.Set)
}

func ptr(s string) *string { return &s }
