package kanka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResource struct {
	ID   int
	Name string
}

func pagedFetcher(pages map[int]*kanka.ListResponse[testResource], calls *[]int) kanka.PageFetcher[testResource] {
	return func(ctx context.Context, page int) (*kanka.ListResponse[testResource], error) {
		*calls = append(*calls, page)

		response, ok := pages[page]
		if !ok {
			return &kanka.ListResponse[testResource]{}, nil
		}

		return response, nil
	}
}

func twoPages() map[int]*kanka.ListResponse[testResource] {
	next := "/characters?page=2"

	return map[int]*kanka.ListResponse[testResource]{
		1: {
			Data:  []testResource{{ID: 1, Name: "Resource 1"}, {ID: 2, Name: "Resource 2"}},
			Links: kanka.Links{Next: &next},
			Meta:  kanka.Meta{CurrentPage: 1, LastPage: 2, Total: 3},
		},
		2: {
			Data: []testResource{{ID: 3, Name: "Resource 3"}},
			Meta: kanka.Meta{CurrentPage: 2, LastPage: 2, Total: 3},
		},
	}
}

func TestPaginationIterator_HasNext(t *testing.T) {
	t.Parallel()

	var calls []int

	iterator := kanka.NewPaginationIterator(context.Background(), pagedFetcher(twoPages(), &calls))

	assert.True(t, iterator.HasNext())

	item, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)

	item, err = iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, item.ID)

	assert.True(t, iterator.HasNext())

	item, err = iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, item.ID)

	assert.False(t, iterator.HasNext())

	_, err = iterator.Next()
	require.ErrorIs(t, err, kanka.ErrNoMoreItems)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestPaginationIterator_All(t *testing.T) {
	t.Parallel()

	var calls []int

	items, err := kanka.FetchAllPages(context.Background(), pagedFetcher(twoPages(), &calls))
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "Resource 3", items[2].Name)
}

func TestPaginationIterator_ForEach(t *testing.T) {
	t.Parallel()

	var (
		calls     []int
		collected []int
	)

	iterator := kanka.NewPaginationIterator(context.Background(), pagedFetcher(twoPages(), &calls))

	err := iterator.ForEach(func(resource testResource) error {
		collected = append(collected, resource.ID)

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, collected)
}

func TestPaginationIterator_Error(t *testing.T) {
	t.Parallel()

	failure := errors.New("boom")
	iterator := kanka.NewPaginationIterator(context.Background(),
		func(ctx context.Context, page int) (*kanka.ListResponse[testResource], error) {
			return nil, failure
		})

	items, err := iterator.All()
	require.ErrorIs(t, err, failure)
	assert.Nil(t, items)
}

func TestPaginationIterator_Empty(t *testing.T) {
	t.Parallel()

	var calls []int

	iterator := kanka.NewPaginationIterator(context.Background(),
		pagedFetcher(map[int]*kanka.ListResponse[testResource]{}, &calls))

	assert.False(t, iterator.HasNext())
	assert.Equal(t, []int{1}, calls)
}

func TestPaginationIterator_EmptyFirstPageWithNext(t *testing.T) {
	t.Parallel()

	var calls []int

	pages := map[int]*kanka.ListResponse[testResource]{
		1: {Meta: kanka.Meta{CurrentPage: 1, LastPage: 2}},
		2: {Data: []testResource{{ID: 3, Name: "late"}}, Meta: kanka.Meta{CurrentPage: 2, LastPage: 2}},
	}

	items, err := kanka.FetchAllPages(context.Background(), pagedFetcher(pages, &calls))
	require.NoError(t, err)

	assert.Equal(t, []testResource{{ID: 3, Name: "late"}}, items)
	assert.Equal(t, []int{1, 2}, calls)
}
