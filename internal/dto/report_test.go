package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

func TestRoundChange(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.04, 0},
		{-0.099, 0}, // below the display threshold collapses to unsigned 0
		{0.1, 0.1},
		{-0.1, -0.1},
		{12.34, 12.3},
		{12.35, 12.4},
		{-7.25, -7.3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundChange(tt.in), 1e-9, "RoundChange(%v)", tt.in)
	}
}

func TestCustomerName(t *testing.T) {
	tests := []struct {
		name    string
		billing entity.Billing
		want    string
	}{
		{"full name", entity.Billing{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", entity.Billing{FirstName: "Jane"}, "Jane"},
		{"email fallback", entity.Billing{Email: "j@example.com"}, "j@example.com"},
		{"guest", entity.Billing{}, "Guest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := entity.Order{Billing: tt.billing}
			assert.Equal(t, tt.want, CustomerName(&o))
		})
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "On Hold", FormatStatus("on-hold"))
	assert.Equal(t, "Completed", FormatStatus("completed"))
	assert.Equal(t, "", FormatStatus(""))
}

func TestConvertReport(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	cmp := entity.TimeRange{From: day.AddDate(0, 0, -14), To: day.AddDate(0, 0, -8)}
	rep := &entity.Report{
		Period:        entity.TimeRange{From: day, To: day.AddDate(0, 0, 6)},
		ComparePeriod: &cmp,
		Metrics: entity.MetricsWithChanges{
			Metrics: entity.Metrics{
				TotalRevenue:   decimal.RequireFromString("150.456"),
				TotalOrders:    3,
				TotalCustomers: 2,
				AvgOrderValue:  decimal.RequireFromString("50.152"),
			},
			Changes: entity.MetricChanges{RevenueChange: 12.34, AOVChange: 0.05},
		},
		Revenue: []entity.TimeSeriesPoint{
			{Date: day, Value: decimal.RequireFromString("150.456"), Count: 3},
		},
		CompareSeries: []entity.TimeSeriesPoint{
			{Date: cmp.From, Value: decimal.NewFromInt(80), Count: 1},
		},
		TopProducts: []entity.ProductSales{
			{ProductID: 7, Name: "Pasture Blend", Quantity: 4, Revenue: decimal.NewFromInt(90)},
		},
		RecentOrders: []entity.Order{
			{Number: "1001", Status: "on-hold", Total: "45.00", DateCreated: entity.Time{Time: day},
				Billing: entity.Billing{FirstName: "Jane", LastName: "Doe"}},
		},
	}

	resp := ConvertReport(rep)
	require.NotNil(t, resp)

	assert.Equal(t, "2024-03-09", resp.Period.From)
	assert.Equal(t, "2024-03-15", resp.Period.To)
	require.NotNil(t, resp.ComparePeriod)
	assert.Equal(t, "2024-02-24", resp.ComparePeriod.From)

	assert.Equal(t, "150.46", resp.Metrics.TotalRevenue)
	assert.Equal(t, "50.15", resp.Metrics.AvgOrderValue)
	assert.InDelta(t, 12.3, resp.Metrics.RevenueChange, 1e-9)
	assert.Zero(t, resp.Metrics.AOVChange)

	require.Len(t, resp.Revenue, 1)
	assert.Equal(t, "2024-03-09", resp.Revenue[0].Date)
	assert.Equal(t, "150.46", resp.Revenue[0].Total)
	assert.Equal(t, 3, resp.Revenue[0].Orders)

	require.Len(t, resp.CompareData, 1)
	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "90", resp.TopProducts[0].Revenue)

	require.Len(t, resp.RecentOrders, 1)
	assert.Equal(t, "Jane Doe", resp.RecentOrders[0].Customer)
	assert.Equal(t, "On Hold", resp.RecentOrders[0].Status)
	assert.Equal(t, "45", resp.RecentOrders[0].Total)
}

func TestConvertReportNil(t *testing.T) {
	assert.Nil(t, ConvertReport(nil))
}
