package bluegem_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/bluegem/pkg/bluegem"
	"github.com/donaldgifford/bluegem/pkg/bluegem/mocks"
	domain "github.com/donaldgifford/bluegem/pkg/types"
)

// pagedAPI returns a mock whose Search serves a dataset of total sales,
// honoring offset and limit.
func pagedAPI(t *testing.T, total int) (*mocks.MockAPI, *[][2]int) {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sales := make([]domain.Sale, total)
	for i := range sales {
		sales[i] = domain.Sale{Pattern: i % 1001, Timestamp: base.Add(-time.Duration(i) * time.Hour)}
	}

	var calls [][2]int
	api := mocks.NewMockAPI(t)
	api.EXPECT().
		Search(mock.Anything, domain.Karambit, mock.Anything).
		RunAndReturn(func(_ context.Context, _ domain.Item, o *bluegem.SearchOptions) (*bluegem.SearchResponse, error) {
			offset, limit := *o.Offset, *o.Limit
			calls = append(calls, [2]int{offset, limit})

			start := min(offset, total)
			end := min(offset+limit, total)
			page := sales[start:end]
			return &bluegem.SearchResponse{
				Meta:  domain.SearchMeta{Size: len(page), Total: total},
				Sales: page,
			}, nil
		}).
		Maybe()

	return api, &calls
}

func TestPaginator_Paginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		total       int
		opts        *bluegem.SearchOptions
		pageOpts    []bluegem.PaginatorOption
		wantSales   int
		wantPages   int
		wantStopped string
		wantCalls   [][2]int
	}{
		{
			name:        "single short page",
			total:       7,
			pageOpts:    []bluegem.PaginatorOption{bluegem.WithPageSize(10)},
			wantSales:   7,
			wantPages:   1,
			wantStopped: bluegem.StopNoMoreResults,
			wantCalls:   [][2]int{{0, 10}},
		},
		{
			name:        "exact multiple stops on total",
			total:       20,
			pageOpts:    []bluegem.PaginatorOption{bluegem.WithPageSize(10)},
			wantSales:   20,
			wantPages:   2,
			wantStopped: bluegem.StopNoMoreResults,
			wantCalls:   [][2]int{{0, 10}, {10, 10}},
		},
		{
			name:        "max pages",
			total:       100,
			pageOpts:    []bluegem.PaginatorOption{bluegem.WithPageSize(10), bluegem.WithMaxPages(3)},
			wantSales:   30,
			wantPages:   3,
			wantStopped: bluegem.StopMaxPages,
			wantCalls:   [][2]int{{0, 10}, {10, 10}, {20, 10}},
		},
		{
			name:        "limit caps overall results",
			total:       100,
			opts:        &bluegem.SearchOptions{Limit: bluegem.Int(25)},
			pageOpts:    []bluegem.PaginatorOption{bluegem.WithPageSize(10)},
			wantSales:   25,
			wantPages:   3,
			wantStopped: bluegem.StopLimit,
			wantCalls:   [][2]int{{0, 10}, {10, 10}, {20, 5}},
		},
		{
			name:        "starts at offset",
			total:       15,
			opts:        &bluegem.SearchOptions{Offset: bluegem.Int(8)},
			pageOpts:    []bluegem.PaginatorOption{bluegem.WithPageSize(5)},
			wantSales:   7,
			wantPages:   2,
			wantStopped: bluegem.StopNoMoreResults,
			wantCalls:   [][2]int{{8, 5}, {13, 5}},
		},
		{
			name:        "zero limit sends nothing",
			total:       10,
			opts:        &bluegem.SearchOptions{Limit: bluegem.Int(0)},
			wantSales:   0,
			wantPages:   0,
			wantStopped: bluegem.StopLimit,
		},
		{
			name:        "empty result",
			total:       0,
			wantSales:   0,
			wantPages:   1,
			wantStopped: bluegem.StopNoMoreResults,
			wantCalls:   [][2]int{{0, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api, calls := pagedAPI(t, tt.total)
			p := bluegem.NewPaginator(api, tt.pageOpts...)

			res, err := p.Paginate(context.Background(), domain.Karambit, tt.opts)
			require.NoError(t, err)

			assert.Len(t, res.Sales, tt.wantSales)
			assert.Equal(t, tt.wantPages, res.PagesUsed)
			assert.Equal(t, tt.wantStopped, res.StoppedAt)
			assert.Equal(t, tt.wantCalls, *calls)
		})
	}
}

func TestPaginator_DoesNotMutateOptions(t *testing.T) {
	t.Parallel()

	api, _ := pagedAPI(t, 30)
	opts := &bluegem.SearchOptions{Limit: bluegem.Int(15), Sort: domain.SortPrice}

	_, err := bluegem.NewPaginator(api, bluegem.WithPageSize(10)).Paginate(context.Background(), domain.Karambit, opts)
	require.NoError(t, err)

	assert.Equal(t, 15, *opts.Limit)
	assert.Nil(t, opts.Offset)
}

func TestPaginator_Error(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockAPI(t)
	api.EXPECT().Search(mock.Anything, domain.Karambit, mock.Anything).
		Return(&bluegem.SearchResponse{
			Meta:  domain.SearchMeta{Size: 2, Total: 10},
			Sales: make([]domain.Sale, 2),
		}, nil).Once()
	api.EXPECT().Search(mock.Anything, domain.Karambit, mock.Anything).
		Return(nil, &bluegem.APIError{Kind: bluegem.ErrServerError, StatusCode: 502}).Once()

	_, err := bluegem.NewPaginator(api, bluegem.WithPageSize(2)).Paginate(context.Background(), domain.Karambit, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching page 1")
	assert.True(t, errors.Is(err, bluegem.ErrServerError))
}
