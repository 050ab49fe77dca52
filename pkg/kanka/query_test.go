package kanka_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/stretchr/testify/assert"
)

func TestListOptions_ToValues(t *testing.T) {
	t.Parallel()

	private := false

	tests := []struct {
		name     string
		opts     *kanka.ListOptions
		expected url.Values
	}{
		{
			name:     "nil options",
			opts:     nil,
			expected: url.Values{},
		},
		{
			name:     "empty options",
			opts:     kanka.NewListOptions(),
			expected: url.Values{},
		},
		{
			name: "pagination and related",
			opts: &kanka.ListOptions{Page: 2, Limit: 50, Related: true},
			expected: url.Values{
				"page":    []string{"2"},
				"limit":   []string{"50"},
				"related": []string{"1"},
			},
		},
		{
			name: "list filters are comma joined",
			opts: &kanka.ListOptions{
				Tags:  []int{1, 2, 3},
				Types: []string{"character", "location"},
			},
			expected: url.Values{
				"tags":  []string{"1,2,3"},
				"types": []string{"character,location"},
			},
		},
		{
			name: "boolean filters are 0 or 1",
			opts: &kanka.ListOptions{IsPrivate: &private},
			expected: url.Values{
				"is_private": []string{"0"},
			},
		},
		{
			name: "named filters",
			opts: &kanka.ListOptions{Name: "Ari", Type: "NPC", CreatedBy: 4, UpdatedBy: 5},
			expected: url.Values{
				"name":       []string{"Ari"},
				"type":       []string{"NPC"},
				"created_by": []string{"4"},
				"updated_by": []string{"5"},
			},
		},
		{
			name: "open filters",
			opts: &kanka.ListOptions{Filters: map[string]any{
				"is_dead":     true,
				"location_id": 12,
				"races":       []int{7, 8},
				"family_id":   nil,
				"sex":         "female",
			}},
			expected: url.Values{
				"is_dead":     []string{"1"},
				"location_id": []string{"12"},
				"races":       []string{"7,8"},
				"sex":         []string{"female"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.opts.ToValues())
		})
	}
}

func TestListOptions_Builders(t *testing.T) {
	t.Parallel()

	opts := kanka.NewListOptions().
		WithPage(3).
		WithLimit(10).
		WithRelated().
		WithName("Ari").
		WithTypes("character").
		WithTypes("note").
		WithTags(1).
		WithTags(2, 3).
		WithPrivate(true).
		WithFilter("is_dead", false)

	values := opts.ToValues()

	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "10", values.Get("limit"))
	assert.Equal(t, "1", values.Get("related"))
	assert.Equal(t, "Ari", values.Get("name"))
	assert.Equal(t, "character,note", values.Get("types"))
	assert.Equal(t, "1,2,3", values.Get("tags"))
	assert.Equal(t, "1", values.Get("is_private"))
	assert.Equal(t, "0", values.Get("is_dead"))
}

func TestPageOptions_ToValues(t *testing.T) {
	t.Parallel()

	var nilOpts *kanka.PageOptions

	assert.Equal(t, url.Values{}, nilOpts.ToValues())
	assert.Equal(t, url.Values{"page": []string{"4"}}, (&kanka.PageOptions{Page: 4}).ToValues())
	assert.Equal(t, url.Values{
		"page":  []string{"1"},
		"limit": []string{"45"},
	}, (&kanka.PageOptions{Page: 1, Limit: 45}).ToValues())
}

func TestFormatFilterValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1", kanka.FormatFilterValue(true))
	assert.Equal(t, "0", kanka.FormatFilterValue(false))
	assert.Equal(t, "a,b", kanka.FormatFilterValue([]string{"a", "b"}))
	assert.Equal(t, "1,0", kanka.FormatFilterValue([]bool{true, false}))
	assert.Equal(t, "2.5", kanka.FormatFilterValue(2.5))
}

func TestFormatFilterValue_PointersAndTimes(t *testing.T) {
	t.Parallel()

	private := false
	ids := []int{1, 2}
	name := "Aria"
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var missing *bool

	assert.Equal(t, "0", kanka.FormatFilterValue(&private))
	assert.Equal(t, "1,2", kanka.FormatFilterValue(&ids))
	assert.Equal(t, "Aria", kanka.FormatFilterValue(&name))
	assert.Equal(t, "2024-01-02T03:04:05Z", kanka.FormatFilterValue(created))
	assert.Equal(t, "2024-01-02T03:04:05Z", kanka.FormatFilterValue(&created))
	assert.Empty(t, kanka.FormatFilterValue(missing))

	values := kanka.NewListOptions().
		WithFilter("is_private", &private).
		WithFilter("tags", &ids).
		WithFilter("created_after", created).
		WithFilter("location_id", missing).
		ToValues()

	assert.Equal(t, "0", values.Get("is_private"))
	assert.Equal(t, "1,2", values.Get("tags"))
	assert.Equal(t, "2024-01-02T03:04:05Z", values.Get("created_after"))
	assert.NotContains(t, values, "location_id")
}
