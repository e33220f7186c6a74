// Package analytics contains the pure aggregation functions the dashboard
// is built from: summary metrics, period-over-period deltas, time bucketing
// and product ranking. None of them perform I/O or mutate their inputs.
package analytics

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeMetrics reduces an order collection to its summary metrics.
// An empty or nil collection yields all-zero metrics. Orders carrying
// neither a customer id nor a billing email are left out of the distinct
// customer count.
func ComputeMetrics(orders []entity.Order) entity.Metrics {
	m := entity.Metrics{
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}
	if len(orders) == 0 {
		return m
	}

	customers := make(map[string]struct{})
	for i := range orders {
		o := &orders[i]
		m.TotalRevenue = m.TotalRevenue.Add(o.TotalDecimal())
		if key, ok := customerKey(o); ok {
			customers[key] = struct{}{}
		}
	}

	m.TotalOrders = len(orders)
	m.TotalCustomers = len(customers)
	m.AvgOrderValue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalOrders)))
	return m
}

// customerKey dedupes by customer id when present and nonzero, falling back
// to the billing email. Guest orders with no email have no identity at all
// and report ok=false.
func customerKey(o *entity.Order) (string, bool) {
	if o.CustomerID != 0 {
		return "id:" + strconv.Itoa(o.CustomerID), true
	}
	if o.Billing.Email != "" {
		return "email:" + o.Billing.Email, true
	}
	return "", false
}

// ChangePct returns the signed percentage delta of current against
// previous. A zero previous value yields 0 regardless of current: the
// delta is undefined there and the dashboard renders it as flat rather
// than propagating an infinity.
func ChangePct(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	f, _ := current.Sub(previous).Div(previous).Mul(hundred).Float64()
	return f
}

// WithComparison attaches period-over-period deltas to the current metrics.
// A nil comparison leaves every change at zero.
func WithComparison(current entity.Metrics, compare *entity.Metrics) entity.MetricsWithChanges {
	mc := entity.MetricsWithChanges{Metrics: current}
	if compare == nil {
		return mc
	}
	mc.Changes = entity.MetricChanges{
		RevenueChange:   ChangePct(current.TotalRevenue, compare.TotalRevenue),
		OrdersChange:    ChangePct(decimal.NewFromInt(int64(current.TotalOrders)), decimal.NewFromInt(int64(compare.TotalOrders))),
		CustomersChange: ChangePct(decimal.NewFromInt(int64(current.TotalCustomers)), decimal.NewFromInt(int64(compare.TotalCustomers))),
		AOVChange:       ChangePct(current.AvgOrderValue, compare.AvgOrderValue),
	}
	return mc
}
