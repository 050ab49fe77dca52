package kanka_test

import (
	"testing"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIDOf(t *testing.T) {
	t.Parallel()

	char := &kanka.Character{Entity: kanka.Entity{ID: 7, EntityID: 70}}

	id, err := kanka.RecordIDOf(kanka.ID(7))
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	id, err = kanka.RecordIDOf(char)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	id, err = kanka.RecordIDOf(*char)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = kanka.RecordIDOf(kanka.ID(0))
	require.ErrorIs(t, err, kanka.ErrRecordIDRequired)

	var missing *kanka.Character

	_, err = kanka.RecordIDOf(missing)
	require.ErrorIs(t, err, kanka.ErrRecordIDRequired)

	_, err = kanka.RecordIDOf(nil)
	require.ErrorIs(t, err, kanka.ErrRecordIDRequired)
}

func TestEntityIDOf(t *testing.T) {
	t.Parallel()

	refs := []kanka.EntityRef{
		kanka.EntityID(70),
		&kanka.Character{Entity: kanka.Entity{ID: 7, EntityID: 70}},
		kanka.Location{Entity: kanka.Entity{ID: 3, EntityID: 70}},
		kanka.SearchResult{ID: 9, EntityID: 70},
		&kanka.GenericEntity{ID: 70, ChildID: 7},
	}

	for _, ref := range refs {
		id, err := kanka.EntityIDOf(ref)
		require.NoError(t, err)
		assert.Equal(t, 70, id, "%T", ref)
	}

	_, err := kanka.EntityIDOf(&kanka.Note{Entity: kanka.Entity{ID: 3}})
	require.ErrorIs(t, err, kanka.ErrEntityIDRequired)

	var missing *kanka.SearchResult

	_, err = kanka.EntityIDOf(missing)
	require.ErrorIs(t, err, kanka.ErrEntityIDRequired)
}
