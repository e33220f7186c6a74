package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is an inclusive day-granular reporting window.
// Invariant: From <= To. Both bounds are local midnight instants; the woo
// client extends To to the end of that calendar day when querying.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Metrics contains the summary numbers for one order collection.
type Metrics struct {
	TotalRevenue   decimal.Decimal
	TotalOrders    int
	TotalCustomers int
	AvgOrderValue  decimal.Decimal
}

// MetricChanges holds signed period-over-period percentage deltas.
type MetricChanges struct {
	RevenueChange   float64
	OrdersChange    float64
	CustomersChange float64
	AOVChange       float64
}

// MetricsWithChanges is Metrics plus deltas against a comparison period.
// Changes are all zero when no comparison period was requested.
type MetricsWithChanges struct {
	Metrics
	Changes MetricChanges
}

// Granularity controls the time bucket size for chart series.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// TimeSeriesPoint is one chart bucket: the bucket start date, the summed
// order totals and the count of orders merged into it.
type TimeSeriesPoint struct {
	Date  time.Time
	Value decimal.Decimal
	Count int
}

// ProductSales accumulates quantity and revenue for one product across all
// line items of the reporting window.
type ProductSales struct {
	ProductID int
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

// Report is the fully assembled dashboard payload for one refresh.
type Report struct {
	Period        TimeRange
	ComparePeriod *TimeRange

	Metrics       MetricsWithChanges
	Revenue       []TimeSeriesPoint
	CompareSeries []TimeSeriesPoint
	TopProducts   []ProductSales
	RecentOrders  []Order
}
