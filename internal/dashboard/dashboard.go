// Package dashboard orchestrates one dashboard refresh: resolve the
// reporting and comparison windows, fetch both order collections, run the
// aggregation pipeline and assemble the report.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jekabolt/woo-analytics/internal/analytics"
	"github.com/jekabolt/woo-analytics/internal/dependency"
	"github.com/jekabolt/woo-analytics/internal/entity"
	"github.com/jekabolt/woo-analytics/internal/period"
)

// ErrSuperseded is returned when a newer refresh was started while this one
// was still fetching. The stale report is discarded so a slow outdated
// fetch can never overwrite a fresher render.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Config tunes report assembly.
type Config struct {
	TopProductsLimit  int `mapstructure:"top_products_limit"`
	RecentOrdersLimit int `mapstructure:"recent_orders_limit"`
}

// Params selects what one refresh computes.
type Params struct {
	Period      period.Token
	Compare     bool
	Mode        period.ComparisonMode
	Granularity entity.Granularity
}

// Service runs refreshes against an injected order source.
type Service struct {
	src dependency.OrderSource
	c   Config
	now func() time.Time
	gen atomic.Uint64
}

// New creates a refresh service. now is the clock used for period
// resolution; pass nil for time.Now.
func New(src dependency.OrderSource, c Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if c.TopProductsLimit <= 0 {
		c.TopProductsLimit = analytics.DefaultTopProductsLimit
	}
	if c.RecentOrdersLimit <= 0 {
		c.RecentOrdersLimit = 10
	}
	return &Service{src: src, c: c, now: now}
}

// Refresh computes a full report for the given parameters. The current and
// comparison fetches run concurrently; either failing aborts the whole
// refresh so the dashboard never renders partial data.
func (s *Service) Refresh(ctx context.Context, p Params) (*entity.Report, error) {
	gen := s.gen.Add(1)

	now := s.now()
	cur := period.Resolve(p.Period, now)

	rep := &entity.Report{Period: cur}

	var (
		current []entity.Order
		compare []entity.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.src.OrdersInRange(gctx, cur)
		if err != nil {
			return fmt.Errorf("current period orders: %w", err)
		}
		return nil
	})
	if p.Compare {
		cmp := period.ResolveComparison(p.Period, p.Mode, now)
		rep.ComparePeriod = &cmp
		g.Go(func() error {
			var err error
			compare, err = s.src.OrdersInRange(gctx, cmp)
			if err != nil {
				return fmt.Errorf("comparison period orders: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A newer refresh started while we were fetching; its results win.
	if s.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	curMetrics := analytics.ComputeMetrics(current)
	if p.Compare {
		cmpMetrics := analytics.ComputeMetrics(compare)
		rep.Metrics = analytics.WithComparison(curMetrics, &cmpMetrics)
		rep.CompareSeries = analytics.BucketOrders(compare, p.Granularity)
	} else {
		rep.Metrics = analytics.WithComparison(curMetrics, nil)
	}
	rep.Revenue = analytics.BucketOrders(current, p.Granularity)
	rep.TopProducts = analytics.TopProducts(current, s.c.TopProductsLimit)
	rep.RecentOrders = recentOrders(current, s.c.RecentOrdersLimit)

	return rep, nil
}

// recentOrders returns the newest orders for the dashboard table, leaving
// the input untouched.
func recentOrders(orders []entity.Order, limit int) []entity.Order {
	out := make([]entity.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateCreated.After(out[j].DateCreated.Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
