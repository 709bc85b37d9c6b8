package adminview

import (
	"net/url"
	"sort"
	"strings"

	"nailstore-client/internal/catalog"
)

type ProductSort string

const (
	ProductSortNewest      ProductSort = "newest"
	ProductSortName        ProductSort = "name"
	ProductSortPriceAsc    ProductSort = "price-asc"
	ProductSortPriceDesc   ProductSort = "price-desc"
	ProductSortBestSelling ProductSort = "best-selling"
)

// ProductQuery is the product dashboard's derived-state input: free-text
// search, category filter, sort preset, page. Run recomputes the whole
// pipeline from the full collection every time.
type ProductQuery struct {
	Search   string
	Category string
	Sort     ProductSort
	Page     int
}

func (q ProductQuery) Run(products []catalog.Product) Page[catalog.Product] {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesProduct(p, search) {
			continue
		}
		if q.Category != "" && !matchesCategory(p, q.Category) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)
	return Paginate(out, q.Page)
}

// Values mirrors the query into a URL query string, the dashboard's
// shareable state.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	setIfPresent(v, "q", q.Search)
	setIfPresent(v, "category", q.Category)
	setIfPresent(v, "sort", string(q.Sort))
	setPage(v, q.Page)
	return v
}

// matchesProduct searches the id and both language sides of the name, so a
// Vietnamese query finds a product listed with an English UI and vice versa.
func matchesProduct(p catalog.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.ID), search) ||
		strings.Contains(strings.ToLower(p.Name.EN), search) ||
		strings.Contains(strings.ToLower(p.Name.VI), search)
}

func matchesCategory(p catalog.Product, category string) bool {
	return strings.EqualFold(p.Category.EN, category) ||
		strings.EqualFold(p.Category.VI, category)
}

func sortProducts(products []catalog.Product, preset ProductSort) {
	switch preset {
	case ProductSortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name.EN) < strings.ToLower(products[j].Name.EN)
		})
	case ProductSortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice().LessThan(products[j].EffectivePrice())
		})
	case ProductSortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].EffectivePrice().LessThan(products[i].EffectivePrice())
		})
	case ProductSortBestSelling:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Sold > products[j].Sold
		})
	default: // ProductSortNewest
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
