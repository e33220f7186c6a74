// Package dependency declares the interfaces between the dashboard layers
// so collaborators are injected explicitly instead of living as globals.
package dependency

import (
	"context"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

type (
	// OrderSource retrieves raw store data from the commerce API.
	OrderSource interface {
		// OrdersInRange returns all orders within the inclusive day range.
		OrdersInRange(ctx context.Context, tr entity.TimeRange) ([]entity.Order, error)
		// Products returns the catalog ordered by popularity.
		Products(ctx context.Context) ([]entity.Product, error)
		// Ping probes API connectivity.
		Ping(ctx context.Context) error
	}
)
