package bluegem

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/bluegem/pkg/types"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 10
)

// Reasons a Paginate call stopped.
const (
	StopNoMoreResults = "no_more_results"
	StopLimit         = "limit"
	StopMaxPages      = "max_pages"
)

// Paginator walks search results page by page using offset and limit.
type Paginator struct {
	api      API
	pageSize int
	maxPages int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize overrides the default page size of 100.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithMaxPages overrides the default cap of 10 pages.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		if n > 0 {
			p.maxPages = n
		}
	}
}

// NewPaginator creates a Paginator over api.
func NewPaginator(api API, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		api:      api,
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds the sales collected across pages.
type PaginateResult struct {
	Sales     []domain.Sale
	Total     int // total matching sales reported by the API
	PagesUsed int
	StoppedAt string
}

// Paginate collects sales of item matching opts, starting at opts.Offset.
// opts.Limit, when set, caps the number of sales collected overall rather
// than per page. It stops when the API runs out of results, the limit is
// reached or the page cap is hit.
func (p *Paginator) Paginate(
	ctx context.Context,
	item domain.Item,
	opts *SearchOptions,
) (*PaginateResult, error) {
	var req SearchOptions
	if opts != nil {
		req = *opts
	}

	offset := 0
	if req.Offset != nil {
		offset = *req.Offset
	}
	want := -1
	if req.Limit != nil {
		want = *req.Limit
	}

	result := &PaginateResult{}

	for page := range p.maxPages {
		size := p.pageSize
		if want >= 0 {
			size = min(size, want-len(result.Sales))
		}
		if size <= 0 {
			result.StoppedAt = StopLimit
			return result, nil
		}

		req.Offset = Int(offset)
		req.Limit = Int(size)

		resp, err := p.api.Search(ctx, item, &req)
		if err != nil {
			return nil, fmt.Errorf("searching page %d: %w", page, err)
		}

		result.PagesUsed++
		result.Total = resp.Meta.Total
		result.Sales = append(result.Sales, resp.Sales...)
		offset += len(resp.Sales)

		if len(resp.Sales) < size || offset >= resp.Meta.Total {
			result.StoppedAt = StopNoMoreResults
			return result, nil
		}
	}

	if want >= 0 && len(result.Sales) >= want {
		result.StoppedAt = StopLimit
	} else {
		result.StoppedAt = StopMaxPages
	}
	return result, nil
}
