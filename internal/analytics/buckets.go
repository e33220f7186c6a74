package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

// BucketOrders re-buckets dated orders into daily, weekly or monthly chart
// points. Weekly buckets are keyed by the Sunday on or before the order's
// date, monthly buckets by the first of the month. Buckets report the
// summed totals and the number of orders merged, sorted ascending by date.
func BucketOrders(orders []entity.Order, g entity.Granularity) []entity.TimeSeriesPoint {
	buckets := make(map[time.Time]*entity.TimeSeriesPoint, len(orders))
	for i := range orders {
		o := &orders[i]
		key := bucketDate(o.DateCreated.Time, g)
		p, ok := buckets[key]
		if !ok {
			p = &entity.TimeSeriesPoint{Date: key, Value: decimal.Zero}
			buckets[key] = p
		}
		p.Value = p.Value.Add(o.TotalDecimal())
		p.Count++
	}

	out := make([]entity.TimeSeriesPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func bucketDate(t time.Time, g entity.Granularity) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch g {
	case entity.GranularityWeekly:
		// week starts Sunday
		return day.AddDate(0, 0, -int(day.Weekday()))
	case entity.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}
