package kanka

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// PageOptions selects one page of a paginated endpoint.
type PageOptions struct {
	Page  int
	Limit int
}

// ToValues converts page options to URL values. Zero fields are omitted.
func (p *PageOptions) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	return values
}

// ListOptions holds pagination and filters for list endpoints.
//
// The filter set is open: keys in Filters are passed through unchanged with
// booleans sent as 0/1, slices comma-joined and nil values skipped.
type ListOptions struct {
	Page      int
	Limit     int
	Related   bool
	Name      string
	Type      string
	Types     []string
	Tags      []int
	IsPrivate *bool
	CreatedBy int
	UpdatedBy int
	Filters   map[string]any
}

// NewListOptions creates empty list options.
func NewListOptions() *ListOptions {
	return &ListOptions{
		Filters: make(map[string]any),
	}
}

// WithPage sets the page number.
func (o *ListOptions) WithPage(page int) *ListOptions {
	o.Page = page

	return o
}

// WithLimit sets the page size.
func (o *ListOptions) WithLimit(limit int) *ListOptions {
	o.Limit = limit

	return o
}

// WithRelated requests posts and attributes inline.
func (o *ListOptions) WithRelated() *ListOptions {
	o.Related = true

	return o
}

// WithName filters by name.
func (o *ListOptions) WithName(name string) *ListOptions {
	o.Name = name

	return o
}

// WithTypes appends entity type names.
func (o *ListOptions) WithTypes(types ...string) *ListOptions {
	o.Types = append(o.Types, types...)

	return o
}

// WithTags appends tag ids.
func (o *ListOptions) WithTags(tags ...int) *ListOptions {
	o.Tags = append(o.Tags, tags...)

	return o
}

// WithPrivate filters on the privacy flag.
func (o *ListOptions) WithPrivate(private bool) *ListOptions {
	o.IsPrivate = &private

	return o
}

// WithFilter sets an arbitrary filter.
func (o *ListOptions) WithFilter(key string, value any) *ListOptions {
	if o.Filters == nil {
		o.Filters = make(map[string]any)
	}

	o.Filters[key] = value

	return o
}

// ToValues converts list options to URL values.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	if o.Related {
		values.Set("related", "1")
	}

	if o.Name != "" {
		values.Set("name", o.Name)
	}

	if o.Type != "" {
		values.Set("type", o.Type)
	}

	if len(o.Types) > 0 {
		values.Set("types", strings.Join(o.Types, ","))
	}

	if len(o.Tags) > 0 {
		values.Set("tags", FormatFilterValue(o.Tags))
	}

	if o.IsPrivate != nil {
		values.Set("is_private", FormatFilterValue(*o.IsPrivate))
	}

	if o.CreatedBy > 0 {
		values.Set("created_by", strconv.Itoa(o.CreatedBy))
	}

	if o.UpdatedBy > 0 {
		values.Set("updated_by", strconv.Itoa(o.UpdatedBy))
	}

	for key, value := range o.Filters {
		if isNilValue(value) {
			continue
		}

		values.Set(key, FormatFilterValue(value))
	}

	return values
}

// FormatFilterValue renders a filter value the way the API expects it:
// booleans as 0/1, slices comma-joined and times as RFC 3339. Pointers are
// formatted as the value they point to; a nil pointer is empty.
func FormatFilterValue(value any) string {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}

		return FormatFilterValue(rv.Elem().Interface())
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case bool:
		if v {
			return "1"
		}

		return "0"
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}

		return strings.Join(parts, ",")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range rv.Len() {
			parts[i] = FormatFilterValue(rv.Index(i).Interface())
		}

		return strings.Join(parts, ",")
	}

	return fmt.Sprint(value)
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
