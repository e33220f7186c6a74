// Package dto converts entity reports into the JSON shapes the dashboard
// frontend consumes. Decimals are serialized as strings.
package dto

import (
	"math"
	"strings"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

const dateLayout = "2006-01-02"

type DashboardResponse struct {
	Period        PeriodJSON  `json:"period"`
	ComparePeriod *PeriodJSON `json:"compare_period,omitempty"`

	Metrics      MetricsJSON       `json:"metrics"`
	Revenue      []SeriesPointJSON `json:"revenue"`
	CompareData  []SeriesPointJSON `json:"compare_revenue,omitempty"`
	TopProducts  []ProductJSON     `json:"top_products"`
	RecentOrders []OrderRowJSON    `json:"recent_orders"`
}

type PeriodJSON struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

type MetricsJSON struct {
	TotalRevenue   string  `json:"total_revenue"`
	TotalOrders    int     `json:"total_orders"`
	TotalCustomers int     `json:"total_customers"`
	AvgOrderValue  string  `json:"avg_order_value"`
	RevenueChange  float64 `json:"revenue_change"`
	OrdersChange   float64 `json:"orders_change"`
	CustomerChange float64 `json:"customers_change"`
	AOVChange      float64 `json:"aov_change"`
}

type SeriesPointJSON struct {
	Date   string `json:"date"`
	Total  string `json:"total"`
	Orders int    `json:"orders"`
}

type ProductJSON struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   string `json:"revenue"`
}

type CatalogProductJSON struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	TotalSales int    `json:"total_sales"`
}

type OrderRowJSON struct {
	Number   string `json:"number"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Total    string `json:"total"`
}

// ConvertReport maps an assembled report to its wire shape.
func ConvertReport(r *entity.Report) *DashboardResponse {
	if r == nil {
		return nil
	}
	resp := &DashboardResponse{
		Period:       periodJSON(r.Period),
		Metrics:      metricsJSON(r.Metrics),
		Revenue:      seriesJSON(r.Revenue),
		TopProducts:  productsJSON(r.TopProducts),
		RecentOrders: orderRowsJSON(r.RecentOrders),
	}
	if r.ComparePeriod != nil {
		p := periodJSON(*r.ComparePeriod)
		resp.ComparePeriod = &p
		resp.CompareData = seriesJSON(r.CompareSeries)
	}
	return resp
}

func periodJSON(tr entity.TimeRange) PeriodJSON {
	return PeriodJSON{
		From:  tr.From.Format(dateLayout),
		To:    tr.To.Format(dateLayout),
		Label: tr.From.Format("Jan 2, 2006") + " - " + tr.To.Format("Jan 2, 2006"),
	}
}

func metricsJSON(m entity.MetricsWithChanges) MetricsJSON {
	return MetricsJSON{
		TotalRevenue:   m.TotalRevenue.Round(2).String(),
		TotalOrders:    m.TotalOrders,
		TotalCustomers: m.TotalCustomers,
		AvgOrderValue:  m.AvgOrderValue.Round(2).String(),
		RevenueChange:  RoundChange(m.Changes.RevenueChange),
		OrdersChange:   RoundChange(m.Changes.OrdersChange),
		CustomerChange: RoundChange(m.Changes.CustomersChange),
		AOVChange:      RoundChange(m.Changes.AOVChange),
	}
}

// RoundChange rounds a percentage delta to one decimal for display.
// Anything below 0.1 in magnitude collapses to an unsigned 0.
func RoundChange(change float64) float64 {
	if math.Abs(change) < 0.1 {
		return 0
	}
	return math.Round(change*10) / 10
}

func seriesJSON(series []entity.TimeSeriesPoint) []SeriesPointJSON {
	if len(series) == 0 {
		return nil
	}
	out := make([]SeriesPointJSON, len(series))
	for i, p := range series {
		out[i] = SeriesPointJSON{
			Date:   p.Date.Format(dateLayout),
			Total:  p.Value.Round(2).String(),
			Orders: p.Count,
		}
	}
	return out
}

func productsJSON(list []entity.ProductSales) []ProductJSON {
	if len(list) == 0 {
		return nil
	}
	out := make([]ProductJSON, len(list))
	for i, p := range list {
		out[i] = ProductJSON{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   p.Revenue.Round(2).String(),
		}
	}
	return out
}

func orderRowsJSON(orders []entity.Order) []OrderRowJSON {
	if len(orders) == 0 {
		return nil
	}
	out := make([]OrderRowJSON, len(orders))
	for i := range orders {
		o := &orders[i]
		out[i] = OrderRowJSON{
			Number:   o.Number,
			Customer: CustomerName(o),
			Date:     o.DateCreated.Format(dateLayout),
			Status:   FormatStatus(o.Status),
			Total:    o.TotalDecimal().Round(2).String(),
		}
	}
	return out
}

// ConvertProducts maps catalog products to their wire shape. The listing
// arrives already ordered by popularity.
func ConvertProducts(products []entity.Product) []CatalogProductJSON {
	out := make([]CatalogProductJSON, len(products))
	for i, p := range products {
		out[i] = CatalogProductJSON{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			TotalSales: p.TotalSales,
		}
	}
	return out
}

// CustomerName builds the display name from the billing block, falling back
// to the billing email and then to "Guest".
func CustomerName(o *entity.Order) string {
	name := strings.TrimSpace(o.Billing.FirstName + " " + o.Billing.LastName)
	if name != "" {
		return name
	}
	if o.Billing.Email != "" {
		return o.Billing.Email
	}
	return "Guest"
}

// FormatStatus turns an API status slug like "on-hold" into "On Hold".
func FormatStatus(status string) string {
	words := strings.Split(strings.ReplaceAll(status, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
