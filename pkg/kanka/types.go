package kanka

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Fields is a set of attribute values sent on create or update.
type Fields map[string]any

// Images maps placeholder src values in an entry to local file paths.
type Images map[string]string

// Extras holds JSON keys the model does not declare.
type Extras map[string]any

// Visibility controls who can see a post or asset.
type Visibility int

// Visibility levels.
const (
	VisibilityDefault   Visibility = 0
	VisibilityAll       Visibility = 1
	VisibilityAdmin     Visibility = 2
	VisibilityAdminSelf Visibility = 3
	VisibilitySelf      Visibility = 4
	VisibilityMembers   Visibility = 5
)

var visibilityNames = map[Visibility]string{
	VisibilityAll:       "all",
	VisibilityAdmin:     "admin",
	VisibilityAdminSelf: "admin-self",
	VisibilitySelf:      "self",
	VisibilityMembers:   "members",
}

// String returns the API name of the visibility level.
func (v Visibility) String() string {
	if name, ok := visibilityNames[v]; ok {
		return name
	}

	return "default"
}

// ParseVisibility accepts a visibility name or its numeric id.
func ParseVisibility(value string) (Visibility, error) {
	for level, name := range visibilityNames {
		if name == value {
			return level, nil
		}
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return VisibilityDefault, fmt.Errorf("unknown visibility %q", value)
	}

	if _, ok := visibilityNames[Visibility(id)]; !ok {
		return VisibilityDefault, fmt.Errorf("unknown visibility id %d", id)
	}

	return Visibility(id), nil
}

// FlexInt decodes a JSON number or a numeric string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string

		err := json.Unmarshal(data, &s)
		if err != nil {
			return fmt.Errorf("decoding flexible int: %w", err)
		}

		if s == "" {
			*f = 0

			return nil
		}

		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("decoding flexible int %q: %w", s, err)
		}

		*f = FlexInt(n)

		return nil
	}

	var n int

	err := json.Unmarshal(data, &n)
	if err != nil {
		return fmt.Errorf("decoding flexible int: %w", err)
	}

	*f = FlexInt(n)

	return nil
}

// Links holds the navigation links of a paginated response.
type Links struct {
	First string  `json:"first"          yaml:"first"`
	Last  string  `json:"last"           yaml:"last"`
	Prev  *string `json:"prev,omitempty" yaml:"prev,omitempty"`
	Next  *string `json:"next,omitempty" yaml:"next,omitempty"`
}

// Meta holds pagination metadata.
type Meta struct {
	CurrentPage FlexInt `json:"current_page" yaml:"current_page"`
	From        FlexInt `json:"from"         yaml:"from"`
	To          FlexInt `json:"to"           yaml:"to"`
	LastPage    FlexInt `json:"last_page"    yaml:"last_page"`
	PerPage     FlexInt `json:"per_page"     yaml:"per_page"`
	Total       FlexInt `json:"total"        yaml:"total"`
	Path        string  `json:"path"         yaml:"path"`
}

// ListResponse is one page of a listing together with its pagination state.
type ListResponse[T any] struct {
	Data  []T   `json:"data"  yaml:"data"`
	Links Links `json:"links" yaml:"links"`
	Meta  Meta  `json:"meta"  yaml:"meta"`
}

// HasNext reports whether the server advertised a next page.
func (r *ListResponse[T]) HasNext() bool {
	if r.Links.Next != nil {
		return *r.Links.Next != ""
	}

	// Some endpoints only return meta.
	return r.Meta.CurrentPage < r.Meta.LastPage
}
