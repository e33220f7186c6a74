package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// wooTimeLayout is how WooCommerce emits order timestamps: no zone
// designator, interpreted as site-local time.
const wooTimeLayout = "2006-01-02T15:04:05"

// Time decodes the zone-less timestamps the store API emits. RFC3339 values
// are accepted too, since some stores sit behind proxies that rewrite to
// date_created_gmt semantics.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(wooTimeLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return fmt.Errorf("cannot parse order timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(wooTimeLayout) + `"`), nil
}

// Order is a WooCommerce REST order payload. Only fields the aggregation
// pipeline reads are mapped; everything else the API returns is dropped on
// decode. Monetary fields arrive as decimal strings and are kept as strings
// until parsed, since the API leniently emits empty or malformed values.
type Order struct {
	ID          int        `json:"id"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	DateCreated Time       `json:"date_created"`
	Total       string     `json:"total"`
	CustomerID  int        `json:"customer_id"`
	Billing     Billing    `json:"billing"`
	LineItems   []LineItem `json:"line_items"`
}

// Billing carries the subset of the billing block used for customer
// identity and display names.
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// LineItem is a single product line of an order.
type LineItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// TotalDecimal parses the order total. Malformed totals count as zero
// rather than failing the whole aggregation.
func (o *Order) TotalDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(o.Total)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TotalDecimal parses the line item total, zero on malformed input.
func (li *LineItem) TotalDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(li.Total)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Product is a WooCommerce catalog product, used by the popularity listing.
type Product struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	TotalSales int    `json:"total_sales"`
}
