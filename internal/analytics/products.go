package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

// DefaultTopProductsLimit bounds the product ranking when the caller passes
// a non-positive limit.
const DefaultTopProductsLimit = 10

// TopProducts flattens all line items, accumulates quantity and revenue per
// product id and returns the top entries by revenue descending. Revenue
// ties keep the order products were first encountered in, so the ranking is
// deterministic for a given order collection.
func TopProducts(orders []entity.Order, limit int) []entity.ProductSales {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	byProduct := make(map[int]*entity.ProductSales)
	var seen []int
	for i := range orders {
		for _, li := range orders[i].LineItems {
			ps, ok := byProduct[li.ProductID]
			if !ok {
				ps = &entity.ProductSales{
					ProductID: li.ProductID,
					Name:      li.Name,
					Revenue:   decimal.Zero,
				}
				byProduct[li.ProductID] = ps
				seen = append(seen, li.ProductID)
			}
			ps.Quantity += li.Quantity
			ps.Revenue = ps.Revenue.Add(li.TotalDecimal())
		}
	}

	out := make([]entity.ProductSales, 0, len(seen))
	for _, id := range seen {
		out = append(out, *byProduct[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
