package kanka_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibility(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "all", kanka.VisibilityAll.String())
	assert.Equal(t, "admin-self", kanka.VisibilityAdminSelf.String())
	assert.Equal(t, "default", kanka.VisibilityDefault.String())

	v, err := kanka.ParseVisibility("members")
	require.NoError(t, err)
	assert.Equal(t, kanka.VisibilityMembers, v)

	v, err = kanka.ParseVisibility("2")
	require.NoError(t, err)
	assert.Equal(t, kanka.VisibilityAdmin, v)

	_, err = kanka.ParseVisibility("everyone")
	require.Error(t, err)

	_, err = kanka.ParseVisibility("9")
	require.Error(t, err)
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var meta kanka.Meta

	err := json.Unmarshal([]byte(`{"current_page":"2","last_page":5,"total":null,"per_page":""}`), &meta)
	require.NoError(t, err)

	assert.Equal(t, kanka.FlexInt(2), meta.CurrentPage)
	assert.Equal(t, kanka.FlexInt(5), meta.LastPage)
	assert.Equal(t, kanka.FlexInt(0), meta.Total)
	assert.Equal(t, kanka.FlexInt(0), meta.PerPage)

	err = json.Unmarshal([]byte(`{"current_page":"two"}`), &meta)
	require.Error(t, err)
}

func TestListResponse_HasNext(t *testing.T) {
	t.Parallel()

	next := "https://api.kanka.io/1.0/campaigns/1/characters?page=2"
	empty := ""

	tests := []struct {
		name     string
		response kanka.ListResponse[kanka.Character]
		expected bool
	}{
		{
			name:     "next link",
			response: kanka.ListResponse[kanka.Character]{Links: kanka.Links{Next: &next}},
			expected: true,
		},
		{
			name:     "empty next link",
			response: kanka.ListResponse[kanka.Character]{Links: kanka.Links{Next: &empty}},
			expected: false,
		},
		{
			name: "meta only",
			response: kanka.ListResponse[kanka.Character]{
				Meta: kanka.Meta{CurrentPage: 1, LastPage: 3},
			},
			expected: true,
		},
		{
			name: "last page",
			response: kanka.ListResponse[kanka.Character]{
				Meta: kanka.Meta{CurrentPage: 3, LastPage: 3},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.response.HasNext())
		})
	}
}
