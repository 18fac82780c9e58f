// Package history builds filtered, paginated queries over transaction
// records and exposes result pages.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pursecli/purse/internal/api"
	"github.com/pursecli/purse/internal/common"
	"github.com/pursecli/purse/internal/model"
)

// DefaultPageSize matches the backend's default history page.
const DefaultPageSize = 10

// Filter narrows a history query. Nil fields mean "no filter".
type Filter struct {
	Type     *model.TransactionType
	Status   *model.TransactionStatus
	Category *model.Category
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

// Page is one page of results together with the total count at fetch time.
type Page struct {
	Items      []model.Transaction
	TotalCount int64
	Number     int
	Size       int
}

// TotalPages derives the page count from the total at fetch time.
func (p *Page) TotalPages() int {
	if p.TotalCount <= 0 || p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// Query holds the current filter and page position for one wallet's
// history. Changing any filter resets the page to 0 so an out-of-range
// page is never silently retained against a shorter result set.
type Query struct {
	backend  api.WalletService
	filter   Filter
	walletID int64
	page     int
	size     int
	gen      uint64
	mu       sync.Mutex
}

// NewQuery creates a history query for one wallet.
func NewQuery(backend api.WalletService, walletID int64, pageSize int) *Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Query{backend: backend, walletID: walletID, size: pageSize}
}

// SetFilter replaces the filter and resets pagination to page 0. Any
// in-flight fetch started before this call will be discarded.
func (q *Query) SetFilter(f Filter) {
	q.mu.Lock()
	q.filter = f
	q.page = 0
	q.gen++
	q.mu.Unlock()
}

// SetPage moves to the requested 0-based page. Negative pages clamp to 0;
// pages beyond the result set clamp during Fetch, when the total is known.
func (q *Query) SetPage(page int) {
	q.mu.Lock()
	if page < 0 {
		page = 0
	}
	q.page = page
	q.mu.Unlock()
}

// Page returns the current 0-based page.
func (q *Query) Page() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page
}

// Fetch retrieves the current page. If the total count shows the requested
// page is out of range (a new transaction arriving, or a filter shrinking
// the result set), the page clamps to the last valid one and is re-fetched.
// Results from a query superseded by a filter change are discarded.
func (q *Query) Fetch(ctx context.Context) (*Page, error) {
	q.mu.Lock()
	gen, page, size, filter := q.gen, q.page, q.size, q.filter
	q.mu.Unlock()

	result, err := q.fetchPage(ctx, page, size, filter)
	if err != nil {
		return nil, err
	}

	// Clamp and re-fetch once when the requested page fell off the end.
	if maxPage := result.TotalPages() - 1; page > maxPage {
		if maxPage < 0 {
			maxPage = 0
		}
		page = maxPage
		result, err = q.fetchPage(ctx, page, size, filter)
		if err != nil {
			return nil, err
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.gen != gen {
		return nil, common.ErrStaleResult
	}
	q.page = page
	return result, nil
}

func (q *Query) fetchPage(ctx context.Context, page, size int, f Filter) (*Page, error) {
	resp, err := q.backend.GetHistory(ctx, api.HistoryRequest{
		WalletID: q.walletID,
		Page:     page,
		Size:     size,
		Type:     f.Type,
		Status:   f.Status,
		Category: f.Category,
		Search:   f.Search,
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history page %d: %w", page, err)
	}
	return &Page{
		Items:      resp.Content,
		TotalCount: resp.TotalElements,
		Number:     page,
		Size:       size,
	}, nil
}

// FetchAll walks every page of the current filter, invoking fn per page.
// Safe against the result set shrinking mid-walk.
func (q *Query) FetchAll(ctx context.Context, fn func(*Page) error) error {
	q.mu.Lock()
	size, filter := q.size, q.filter
	q.mu.Unlock()

	for page := 0; ; page++ {
		result, err := q.fetchPage(ctx, page, size, filter)
		if err != nil {
			return err
		}
		if len(result.Items) == 0 {
			return nil
		}
		if err := fn(result); err != nil {
			return err
		}
		if page >= result.TotalPages()-1 {
			return nil
		}
	}
}
