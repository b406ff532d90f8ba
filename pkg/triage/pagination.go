package triage

import (
	"context"
	"net/url"
	"strings"
)

// PageFunc fetches and decodes one page at the given path. The path already
// carries the continuation cursor when one applies.
type PageFunc[T any] func(ctx context.Context, path string) (*ListResponse[T], error)

// Paginator is a lazy, forward-only iterator over a cursor-paginated list
// endpoint. It is single-pass and not restartable: construct a new one to
// iterate again. It fetches one page at a time and never buffers beyond the
// current page. Not safe for concurrent use.
type Paginator[T any] struct {
	ctx      context.Context
	fetch    PageFunc[T]
	basePath string
	max      int
	emitted  int
	buffer   []T
	index    int
	cursor   *string
	done     bool
	fetchErr error
}

// NewPaginator creates a paginator over basePath emitting at most max items.
// A max of zero (or less) yields an empty sequence without any request.
func NewPaginator[T any](ctx context.Context, fetch PageFunc[T], basePath string, max int) *Paginator[T] {
	paginator := &Paginator[T]{
		ctx:      ctx,
		fetch:    fetch,
		basePath: basePath,
		max:      max,
	}

	if max <= 0 {
		paginator.done = true
	}

	return paginator
}

// HasNext reports whether another item is available, fetching the next page
// if the current one is exhausted. A pending fetch error also counts as
// available so that Next can surface it.
func (p *Paginator[T]) HasNext() bool {
	if p.fetchErr != nil || p.index < len(p.buffer) {
		return true
	}

	if p.done {
		return false
	}

	p.fetchPage()

	return p.fetchErr != nil || p.index < len(p.buffer)
}

// Next returns the next item. It returns ErrNoMoreItems once the sequence is
// exhausted, or the underlying fetch error if a page request failed.
func (p *Paginator[T]) Next() (T, error) {
	var zero T

	if !p.HasNext() {
		return zero, ErrNoMoreItems
	}

	if p.fetchErr != nil {
		err := p.fetchErr
		p.fetchErr = nil
		p.done = true

		return zero, err
	}

	item := p.buffer[p.index]
	p.index++
	p.emitted++

	if p.emitted >= p.max {
		p.done = true
		p.buffer = nil
		p.index = 0
	}

	return item, nil
}

// All drains the remaining sequence into a slice.
func (p *Paginator[T]) All() ([]T, error) {
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

// fetchPage requests the next page. An empty page or an absent cursor ends
// the sequence; a cursor is only ever applied to the query it came from.
func (p *Paginator[T]) fetchPage() {
	path := p.basePath

	if p.cursor != nil {
		separator := "?"
		if strings.Contains(path, "?") {
			separator = "&"
		}

		path += separator + "offset=" + url.QueryEscape(*p.cursor)
	}

	page, err := p.fetch(p.ctx, path)
	if err != nil {
		p.fetchErr = err
		p.done = true

		return
	}

	if len(page.Data) == 0 {
		p.done = true

		return
	}

	p.buffer = page.Data
	p.index = 0
	p.cursor = page.Next

	if page.Next == nil || *page.Next == "" {
		p.done = true
	}
}
