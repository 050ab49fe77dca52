package kanka

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type extrasSetter interface {
	setExtras(extra Extras)
}

var knownKeysCache sync.Map // reflect.Type -> map[string]struct{}

// Decode unmarshals a JSON object into a T and stores every key T does not
// declare in its Extra map.
func Decode[T any](data []byte) (*T, error) {
	var value T

	err := json.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("decoding %T: %w", value, err)
	}

	err = captureExtras(data, &value)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

// DecodeData unmarshals a `{"data": {...}}` envelope.
func DecodeData[T any](data []byte) (*T, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}

	err := json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}

	return Decode[T](envelope.Data)
}

// DecodeList unmarshals a paginated `{"data": [...], "links": ..., "meta": ...}`
// response, capturing extras on every item.
func DecodeList[T any](data []byte) (*ListResponse[T], error) {
	var raw struct {
		Data  []json.RawMessage `json:"data"`
		Links Links             `json:"links"`
		Meta  Meta              `json:"meta"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}

	list := &ListResponse[T]{
		Data:  make([]T, 0, len(raw.Data)),
		Links: raw.Links,
		Meta:  raw.Meta,
	}

	for i, item := range raw.Data {
		value, err := Decode[T](item)
		if err != nil {
			return nil, fmt.Errorf("decoding list item %d: %w", i, err)
		}

		list.Data = append(list.Data, *value)
	}

	return list, nil
}

// Flatten returns the JSON object form of a decoded value with its Extra map
// merged back in. Declared fields win over extras of the same name.
func Flatten(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", value, err)
	}

	out := map[string]any{}

	err = json.Unmarshal(data, &out)
	if err != nil {
		return nil, fmt.Errorf("flattening %T: %w", value, err)
	}

	for key, extra := range extrasOf(value) {
		if _, ok := out[key]; !ok {
			out[key] = extra
		}
	}

	return out, nil
}

func extrasOf(value any) Extras {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	field := v.FieldByName("Extra")
	if !field.IsValid() {
		return nil
	}

	extra, _ := field.Interface().(Extras)

	return extra
}

func captureExtras(data []byte, target any) error {
	setter, ok := target.(extrasSetter)
	if !ok {
		return nil
	}

	var fields map[string]json.RawMessage

	// Non-object payloads have no extras.
	if json.Unmarshal(data, &fields) != nil {
		return nil
	}

	known := knownKeys(reflect.TypeOf(target).Elem())
	extra := Extras{}

	for key, raw := range fields {
		if _, ok := known[strings.ToLower(key)]; ok {
			continue
		}

		var value any

		err := json.Unmarshal(raw, &value)
		if err != nil {
			return fmt.Errorf("decoding extra field %q: %w", key, err)
		}

		extra[key] = value
	}

	if len(extra) > 0 {
		setter.setExtras(extra)
	}

	return nil
}

func knownKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]struct{}) //nolint:forcetypeassert
	}

	keys := map[string]struct{}{}
	collectKeys(t, keys)
	knownKeysCache.Store(t, keys)

	return keys
}

func collectKeys(t reflect.Type, keys map[string]struct{}) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("json")

		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")

		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}

			if embedded.Kind() == reflect.Struct {
				collectKeys(embedded, keys)

				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		if name == "" {
			name = field.Name
		}

		keys[strings.ToLower(name)] = struct{}{}
	}
}
