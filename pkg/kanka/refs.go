package kanka

import (
	"fmt"
	"reflect"
)

// ID is a bare type-specific record id, as used by one entity type's endpoint.
type ID int

// EntityID is a bare universal entity id.
type EntityID int

// RecordRef identifies a record within one entity type: either a bare ID or a
// previously fetched entity value.
type RecordRef interface {
	recordID() int
}

// EntityRef identifies an entity across types: either a bare EntityID, a
// fetched entity, a search result or a generic entity row.
type EntityRef interface {
	universalID() int
}

func (id ID) recordID() int          { return int(id) }
func (id EntityID) universalID() int { return int(id) }

// RecordIDOf resolves a record reference to its type-specific id.
func RecordIDOf(ref RecordRef) (int, error) {
	if isNilRef(ref) {
		return 0, ErrRecordIDRequired
	}

	id := ref.recordID()
	if id <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrRecordIDRequired, id)
	}

	return id, nil
}

// EntityIDOf resolves an entity reference to its universal entity id. Every
// posts, assets and image call goes through it.
func EntityIDOf(ref EntityRef) (int, error) {
	if isNilRef(ref) {
		return 0, ErrEntityIDRequired
	}

	id := ref.universalID()
	if id <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrEntityIDRequired, id)
	}

	return id, nil
}

func isNilRef(ref any) bool {
	if ref == nil {
		return true
	}

	v := reflect.ValueOf(ref)

	return v.Kind() == reflect.Ptr && v.IsNil()
}
