// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package weather

import (
	"context"
	"strings"

	"github.com/farmflight/farmflight/pkg/config"
	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

var ErrNoPeriods = errors.New("no forecast periods found in the weather data")

// Client reads the forecast API and caches periods per coordinate pair
type Client struct {
	httpClient *resty.Client
	cache      *gocache.Cache
}

// NewClient creates a weather Client. A zero CacheTTL disables caching.
func NewClient(cfg config.WeatherConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	c := &Client{httpClient: client}
	if cfg.CacheTTL > 0 {
		c.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c
}

// Current returns the first forecast period at lat,long
func (c *Client) Current(ctx context.Context, lat, long string) (*Current, error) {
	periods, err := c.periods(ctx, lat, long)
	if err != nil {
		return nil, err
	}
	cur := periods[0].current()
	return &cur, nil
}

// Forecast returns up to MaxForecastPeriods periods at lat,long
func (c *Client) Forecast(ctx context.Context, lat, long string) ([]Period, error) {
	periods, err := c.periods(ctx, lat, long)
	if err != nil {
		return nil, err
	}
	if len(periods) > MaxForecastPeriods {
		periods = periods[:MaxForecastPeriods]
	}
	out := make([]Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.period())
	}
	return out, nil
}

func (c *Client) periods(ctx context.Context, lat, long string) ([]upstreamPeriod, error) {
	key := lat + "," + long
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached.([]upstreamPeriod), nil
		}
	}

	var out upstreamForecast
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"lat": lat, "long": long}).
		SetResult(&out).
		Get("/forecast")
	if err != nil {
		return nil, errors.Wrap(err, "request forecast")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("external weather API responded with status: %d", resp.StatusCode())
	}
	if len(out.Periods) == 0 {
		return nil, ErrNoPeriods
	}

	if c.cache != nil {
		c.cache.Set(key, out.Periods, gocache.DefaultExpiration)
	}
	return out.Periods, nil
}
