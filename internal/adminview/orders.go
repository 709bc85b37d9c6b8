package adminview

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"nailstore-client/internal/order"
)

type OrderSort string

const (
	OrderSortNewest    OrderSort = "newest"
	OrderSortOldest    OrderSort = "oldest"
	OrderSortTotalAsc  OrderSort = "total-asc"
	OrderSortTotalDesc OrderSort = "total-desc"
)

// OrderQuery drives the order dashboard: free-text search on id/username/
// email, a status filter, an inclusive date range, sort preset, page.
type OrderQuery struct {
	Search string
	Status order.Status
	From   time.Time
	To     time.Time
	Sort   OrderSort
	Page   int
}

func (q OrderQuery) Run(orders []order.Order) Page[order.Order] {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" && !matchesOrder(o, search) {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if !q.From.IsZero() && o.CreatedAt.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && o.CreatedAt.After(q.To) {
			continue
		}
		out = append(out, o)
	}

	sortOrders(out, q.Sort)
	return Paginate(out, q.Page)
}

func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	setIfPresent(v, "q", q.Search)
	setIfPresent(v, "status", string(q.Status))
	if !q.From.IsZero() {
		v.Set("from", q.From.Format(time.DateOnly))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.Format(time.DateOnly))
	}
	setIfPresent(v, "sort", string(q.Sort))
	setPage(v, q.Page)
	return v
}

func matchesOrder(o order.Order, search string) bool {
	return strings.Contains(strings.ToLower(o.ID), search) ||
		strings.Contains(strings.ToLower(o.Username), search) ||
		strings.Contains(strings.ToLower(o.Email), search)
}

func sortOrders(orders []order.Order, preset OrderSort) {
	switch preset {
	case OrderSortOldest:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		})
	case OrderSortTotalAsc:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].TotalCents < orders[j].TotalCents
		})
	case OrderSortTotalDesc:
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].TotalCents > orders[j].TotalCents
		})
	default: // OrderSortNewest
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}
}
