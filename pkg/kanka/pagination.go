package kanka

import (
	"context"
	"fmt"
)

// PageFetcher fetches one page of a listing.
type PageFetcher[T any] func(ctx context.Context, page int) (*ListResponse[T], error)

// PaginationIterator walks every item of a paginated listing, fetching pages lazily.
type PaginationIterator[T any] struct {
	ctx     context.Context //nolint:containedctx
	fetch   PageFetcher[T]
	current *ListResponse[T]
	page    int
	index   int
	err     error
}

// NewPaginationIterator creates an iterator starting at the first page.
func NewPaginationIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether another item is available. It fetches the next page
// when the current one is exhausted; a fetch failure is returned by Next.
func (p *PaginationIterator[T]) HasNext() bool {
	if p.err != nil {
		return true
	}

	if p.current == nil {
		p.load(1)
		if p.err != nil {
			return true
		}
	}

	if p.index < len(p.current.Data) {
		return true
	}

	for p.current.HasNext() {
		p.load(p.page + 1)
		if p.err != nil {
			return true
		}

		if len(p.current.Data) > 0 {
			return true
		}
	}

	return false
}

// Next returns the next item.
func (p *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !p.HasNext() {
		return zero, ErrNoMoreItems
	}

	if p.err != nil {
		err := p.err
		p.err = nil

		return zero, err
	}

	item := p.current.Data[p.index]
	p.index++

	return item, nil
}

// All collects every remaining item.
func (p *PaginationIterator[T]) All() ([]T, error) {
	var items []T

	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (p *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for p.HasNext() {
		item, err := p.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *PaginationIterator[T]) load(page int) {
	resp, err := p.fetch(p.ctx, page)
	if err != nil {
		p.err = fmt.Errorf("fetching page %d: %w", page, err)
		p.current = &ListResponse[T]{}

		return
	}

	p.current = resp
	p.page = page
	p.index = 0
}

// FetchAllPages collects every item of a listing.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	return NewPaginationIterator(ctx, fetch).All()
}
