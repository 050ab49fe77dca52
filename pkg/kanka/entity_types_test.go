package kanka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

func TestLookupEntityType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		endpoint string
	}{
		{input: "character", endpoint: "characters"},
		{input: "Characters", endpoint: "characters"},
		{input: "dice-roll", endpoint: "dice_rolls"},
		{input: " attribute template ", endpoint: "attribute_templates"},
		{input: "families", endpoint: "families"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			entityType, err := kanka.LookupEntityType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, entityType.Endpoint)
		})
	}

	_, err := kanka.LookupEntityType("dragon")
	require.ErrorIs(t, err, kanka.ErrUnknownEntityType)
	assert.Contains(t, err.Error(), `"dragon"`)
}

func TestEntityTypes_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}

	for _, entityType := range kanka.EntityTypes {
		assert.False(t, seen[entityType.Name], entityType.Name)
		assert.False(t, seen[entityType.Endpoint], entityType.Endpoint)

		seen[entityType.Name] = true
		seen[entityType.Endpoint] = true
	}

	assert.Len(t, kanka.EntityTypes, 20)
}
