package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/pokenihongo/admin-console/internal/multilingual"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL (got %q)", c.API.BaseURL)
	}
	if _, err := multilingual.ParseLanguage(c.API.Locale); err != nil {
		return fmt.Errorf("api.locale: %w", err)
	}
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Listing.validate(); err != nil {
		return fmt.Errorf("listing: %w", err)
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.RateLimit.MutationsPerMinute < 1 {
		return fmt.Errorf("rate_limit.mutations_per_minute must be > 0 (got %d)", c.RateLimit.MutationsPerMinute)
	}

	return nil
}

func (l *ListingConfig) validate() error {
	opts, err := ParsePageSizeOptions(l.PageSizeOptionsRaw)
	if err != nil {
		return fmt.Errorf("page_size_options: %w", err)
	}
	if len(opts) == 0 {
		return fmt.Errorf("page_size_options must not be empty")
	}
	if !slices.Contains(opts, l.DefaultPageSize) {
		return fmt.Errorf("default_page_size %d is not one of %v", l.DefaultPageSize, opts)
	}
	if l.MaxVisiblePages < 1 {
		return fmt.Errorf("max_visible_pages must be > 0 (got %d)", l.MaxVisiblePages)
	}
	l.PageSizeOptions = opts
	return nil
}

func (c CacheConfig) validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", c.TTL)
	}
	if c.Size < 1 {
		return fmt.Errorf("size must be > 0 (got %d)", c.Size)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be > 0 (got %d)", c.MaxConcurrency)
	}
	return nil
}

// ParsePageSizeOptions parses a comma-separated list of positive page sizes
// (e.g. "15,30,45,60") in ascending order without duplicates.
func ParsePageSizeOptions(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out []int
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid page size %q: %w", p, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("page size must be > 0 (got %d)", n)
		}
		out = append(out, n)
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}
