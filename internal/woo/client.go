// Package woo is the WooCommerce v3 REST client the dashboard fetches
// orders and products from.
package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jekabolt/woo-analytics/internal/entity"
)

const perPage = 100

// Config is the store connection configuration. Consumer key and secret are
// passed through as query parameters, the auth style WooCommerce uses for
// HTTPS stores.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// Client talks to a single WooCommerce store.
type Client struct {
	cli *resty.Client
}

// New creates a client for the configured store.
func New(c *Config) *Client {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	cli := resty.New()
	cli.SetBaseURL(c.BaseURL)
	cli.SetQueryParam("consumer_key", c.ConsumerKey)
	cli.SetQueryParam("consumer_secret", c.ConsumerSecret)
	cli.SetTimeout(timeout)

	return &Client{cli: cli}
}

// OrdersInRange retrieves every order placed inside the inclusive day range.
// The end bound is extended to the last instant of its calendar day before
// being sent as the `before` query bound. Pages of 100 are walked until a
// short page; any non-2xx response aborts the whole retrieval.
func (c *Client) OrdersInRange(ctx context.Context, tr entity.TimeRange) ([]entity.Order, error) {
	after := tr.From.Format(time.RFC3339)
	before := endOfDay(tr.To).Format(time.RFC3339)

	var all []entity.Order
	for page := 1; ; page++ {
		resp, err := c.cli.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"after":    after,
				"before":   before,
				"per_page": strconv.Itoa(perPage),
				"page":     strconv.Itoa(page),
				"orderby":  "date",
				"order":    "desc",
			}).
			Get("/orders")
		if err != nil {
			return nil, fmt.Errorf("orders request: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("orders request: status %d: %s", resp.StatusCode(), resp.String())
		}

		var orders []entity.Order
		if err := json.Unmarshal(resp.Body(), &orders); err != nil {
			return nil, fmt.Errorf("could not unmarshal orders: %w : body: %v", err, resp.String())
		}
		all = append(all, orders...)
		if len(orders) < perPage {
			return all, nil
		}
	}
}

// Products returns the store catalog ordered by popularity, first page only.
func (c *Client) Products(ctx context.Context) ([]entity.Product, error) {
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"per_page": strconv.Itoa(perPage),
			"orderby":  "popularity",
			"order":    "desc",
		}).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("products request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("products request: status %d: %s", resp.StatusCode(), resp.String())
	}

	var products []entity.Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("could not unmarshal products: %w : body: %v", err, resp.String())
	}
	return products, nil
}

// Ping probes store connectivity via the system status endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.cli.R().SetContext(ctx).Get("/system_status")
	if err != nil {
		return fmt.Errorf("system status request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("system status request: status %d", resp.StatusCode())
	}
	return nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
