package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/http"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// Attributes assigned by the server. They are never sent on create and never
// diffed on update.
var serverAssignedFields = map[string]struct{}{
	"id":         {},
	"entity_id":  {},
	"created_at": {},
	"created_by": {},
	"updated_at": {},
	"updated_by": {},
}

type baser interface {
	Base() *kanka.Entity
}

// baseOf returns the shared entity attributes of a record, or nil for types
// that do not embed kanka.Entity.
func baseOf[T any](record *T) *kanka.Entity {
	if record == nil {
		return nil
	}

	if b, ok := any(record).(baser); ok {
		return b.Base()
	}

	return nil
}

// EntityManager implements kanka.EntityManager for one entity type.
type EntityManager[T any] struct {
	*SubResourceClient

	httpClient *http.Client
	endpoint   string
	name       string
}

// NewEntityManager creates a manager for the collection at endpoint. name is
// the singular used in error messages.
func NewEntityManager[T any](httpClient *http.Client, resources *SubResourceClient, endpoint, name string) *EntityManager[T] {
	return &EntityManager[T]{
		SubResourceClient: resources,
		httpClient:        httpClient,
		endpoint:          endpoint,
		name:              name,
	}
}

// Endpoint implements kanka.EntityManager.Endpoint.
func (m *EntityManager[T]) Endpoint() string {
	return m.endpoint
}

func (m *EntityManager[T]) recordPath(id int) string {
	return m.endpoint + "/" + strconv.Itoa(id)
}

// Get implements kanka.EntityManager.Get.
func (m *EntityManager[T]) Get(ctx context.Context, id int) (*T, error) {
	return m.get(ctx, id, nil)
}

// GetRelated implements kanka.EntityManager.GetRelated.
func (m *EntityManager[T]) GetRelated(ctx context.Context, id int) (*T, error) {
	return m.get(ctx, id, url.Values{"related": []string{"1"}})
}

func (m *EntityManager[T]) get(ctx context.Context, id int, query url.Values) (*T, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", kanka.ErrRecordIDRequired, id)
	}

	resp, err := m.httpClient.Get(ctx, m.recordPath(id), query)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", m.name, err)
	}

	record, err := kanka.DecodeData[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", m.name, err)
	}

	return record, nil
}

// List implements kanka.EntityManager.List.
func (m *EntityManager[T]) List(ctx context.Context, opts *kanka.ListOptions) (*kanka.ListResponse[T], error) {
	query := opts.ToValues()
	if query.Get("page") == "" {
		query.Set("page", strconv.Itoa(constants.DefaultPage))
	}

	if query.Get("limit") == "" {
		query.Set("limit", strconv.Itoa(constants.DefaultPageLimit))
	}

	resp, err := m.httpClient.Get(ctx, m.endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", m.endpoint, err)
	}

	list, err := kanka.DecodeList[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", m.name, err)
	}

	return list, nil
}

// ListAll implements kanka.EntityManager.ListAll. Pages are requested at the
// largest size the API allows unless opts sets a limit.
func (m *EntityManager[T]) ListAll(ctx context.Context, opts *kanka.ListOptions) ([]T, error) {
	base := kanka.ListOptions{}
	if opts != nil {
		base = *opts
	}

	if base.Limit == 0 {
		base.Limit = constants.MaxPageLimit
	}

	return kanka.FetchAllPages(ctx, func(ctx context.Context, page int) (*kanka.ListResponse[T], error) {
		pageOpts := base
		pageOpts.Page = page

		return m.List(ctx, &pageOpts)
	})
}

// Create implements kanka.EntityManager.Create. Server-assigned attributes in
// fields are dropped. With images, the entry returned by the server is
// rewritten against the new entity's managed assets and patched back when it
// changed.
func (m *EntityManager[T]) Create(ctx context.Context, fields kanka.Fields, opts ...kanka.WriteOption) (*T, error) {
	options := kanka.ApplyWriteOptions(opts...)

	payload := kanka.Fields{}

	for key, value := range fields {
		if _, ok := serverAssignedFields[key]; !ok {
			payload[key] = value
		}
	}

	resp, err := m.httpClient.Post(ctx, m.endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", m.name, err)
	}

	created, err := kanka.DecodeData[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", m.name, err)
	}

	base := baseOf(created)
	if len(options.Images) == 0 || base == nil || base.EntityID == 0 {
		return created, nil
	}

	entry, err := m.uploadManagedImages(ctx, base.EntityID, base.Entry, options.Images)
	if err != nil {
		return nil, err
	}

	if entry == base.Entry {
		return created, nil
	}

	return m.patch(ctx, base.ID, kanka.Fields{"entry": entry})
}

// Update implements kanka.EntityManager.Update.
func (m *EntityManager[T]) Update(
	ctx context.Context,
	ref kanka.RecordRef,
	fields kanka.Fields,
	opts ...kanka.WriteOption,
) (*T, error) {
	id, err := kanka.RecordIDOf(ref)
	if err != nil {
		return nil, err
	}

	options := kanka.ApplyWriteOptions(opts...)

	snapshot, err := snapshotOf[T](ref)
	if err != nil {
		return nil, err
	}

	var payload kanka.Fields
	if snapshot == nil {
		payload = kanka.Fields{}
		for key, value := range fields {
			payload[key] = value
		}
	} else {
		payload, err = changedFields(snapshot, fields)
		if err != nil {
			return nil, err
		}
	}

	if len(options.Images) > 0 {
		err = m.applyManagedImages(ctx, id, snapshot, fields, payload, options.Images)
		if err != nil {
			return nil, err
		}
	}

	if len(payload) == 0 {
		if snapshot != nil {
			return snapshot, nil
		}

		return m.Get(ctx, id)
	}

	return m.patch(ctx, id, payload)
}

// applyManagedImages reconciles the entity's managed assets and puts the
// rewritten entry into payload when it differs from the stored one. When
// diffing against a snapshot an entry that ends up unchanged is dropped.
func (m *EntityManager[T]) applyManagedImages(
	ctx context.Context,
	id int,
	snapshot *T,
	fields kanka.Fields,
	payload kanka.Fields,
	images kanka.Images,
) error {
	known := snapshot
	if base := baseOf(known); base == nil || base.EntityID == 0 {
		fetched, err := m.Get(ctx, id)
		if err != nil {
			return err
		}

		known = fetched
	}

	base := baseOf(known)
	if base == nil {
		return nil
	}

	entry := base.Entry

	if raw, ok := fields["entry"]; ok {
		str, isString := raw.(string)
		if !isString {
			return fmt.Errorf("%w: got %T", kanka.ErrInvalidEntry, raw)
		}

		entry = str
	}

	updated, err := m.reconcileManagedImages(ctx, base.EntityID, entry, images)
	if err != nil {
		return err
	}

	switch {
	case updated != base.Entry:
		payload["entry"] = updated
	case snapshot != nil:
		delete(payload, "entry")
	default:
		if _, ok := payload["entry"]; ok {
			payload["entry"] = updated
		}
	}

	return nil
}

func (m *EntityManager[T]) patch(ctx context.Context, id int, payload kanka.Fields) (*T, error) {
	resp, err := m.httpClient.Patch(ctx, m.recordPath(id), payload)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", m.name, err)
	}

	record, err := kanka.DecodeData[T](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", m.name, err)
	}

	return record, nil
}

// Delete implements kanka.EntityManager.Delete.
func (m *EntityManager[T]) Delete(ctx context.Context, ref kanka.RecordRef) error {
	id, err := kanka.RecordIDOf(ref)
	if err != nil {
		return err
	}

	_, err = m.httpClient.Delete(ctx, m.recordPath(id))
	if err != nil {
		return fmt.Errorf("deleting %s: %w", m.name, err)
	}

	return nil
}

// snapshotOf returns the record carried by ref, or nil for a bare id. Records
// of another type are converted through their JSON form.
func snapshotOf[T any](ref kanka.RecordRef) (*T, error) {
	switch value := any(ref).(type) {
	case kanka.ID:
		return nil, nil //nolint:nilnil
	case *T:
		return value, nil
	case T:
		return &value, nil
	}

	data, err := json.Marshal(ref)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	return kanka.Decode[T](data)
}

// changedFields returns the entries of fields whose JSON value differs from
// the snapshot. Undeclared attributes kept in the snapshot's extras take part
// in the comparison.
func changedFields[T any](snapshot *T, fields kanka.Fields) (kanka.Fields, error) {
	current, err := normalizedRecord(snapshot)
	if err != nil {
		return nil, err
	}

	changed := kanka.Fields{}

	for key, value := range fields {
		if _, ok := serverAssignedFields[key]; ok {
			continue
		}

		normalized, err := normalizeValue(value)
		if err != nil {
			return nil, fmt.Errorf("encoding field %s: %w", key, err)
		}

		if old, ok := current[key]; ok && reflect.DeepEqual(old, normalized) {
			continue
		}

		changed[key] = value
	}

	return changed, nil
}

func normalizedRecord[T any](record *T) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}

	values := map[string]any{}

	err = json.Unmarshal(data, &values)
	if err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	if base := baseOf(record); base != nil {
		for key, value := range base.Extra {
			if _, ok := values[key]; ok {
				continue
			}

			normalized, err := normalizeValue(value)
			if err != nil {
				return nil, fmt.Errorf("encoding extra %s: %w", key, err)
			}

			values[key] = normalized
		}
	}

	return values, nil
}

func normalizeValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var normalized any

	err = json.Unmarshal(data, &normalized)
	if err != nil {
		return nil, err
	}

	return normalized, nil
}
