package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const areaCacheTTL = 24 * time.Hour

// AreaCache remembers region name → area id lookups.
type AreaCache interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, id string) error
}

// AreaResolver turns a region typed by the user into an hh.ru area id.
// Numeric input is taken as an id already. Names go through the
// /suggests/areas endpoint; when nothing is found the input is returned
// unchanged and hh.ru decides what to do with it.
type AreaResolver struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     AreaCache
	log       *slog.Logger
}

// NewAreaResolver builds a resolver. cache may be nil.
func NewAreaResolver(baseURL, userAgent string, cache AreaCache, logger *slog.Logger) *AreaResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AreaResolver{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: httpTimeout},
		cache:     cache,
		log:       logger,
	}
}

type areaSuggestResponse struct {
	Items []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"items"`
}

// Resolve never fails; lookup problems are logged and the raw text is used.
func (r *AreaResolver) Resolve(ctx context.Context, region string) string {
	region = strings.TrimSpace(region)
	if region == "" {
		return region
	}
	if _, err := strconv.Atoi(region); err == nil {
		return region
	}

	key := strings.ToLower(region)
	if r.cache != nil {
		id, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.log.Warn("area cache get failed", "region", region, "err", err)
		} else if ok {
			return id
		}
	}

	id, err := r.suggest(ctx, region)
	if err != nil {
		r.log.Warn("area lookup failed, using raw region", "region", region, "err", err)
		return region
	}
	if id == "" {
		return region
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, id); err != nil {
			r.log.Warn("area cache set failed", "region", region, "err", err)
		}
	}
	return id
}

func (r *AreaResolver) suggest(ctx context.Context, text string) (string, error) {
	reqURL := r.baseURL + "/suggests/areas?" + url.Values{"text": {text}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hh.ru returned %d", resp.StatusCode)
	}

	var s areaSuggestResponse
	if err := json.Unmarshal(body, &s); err != nil {
		return "", fmt.Errorf("json unmarshal: %w", err)
	}
	if len(s.Items) == 0 {
		return "", nil
	}
	return s.Items[0].ID, nil
}

// RedisAreaCache stores lookups under area:<name> for a day.
type RedisAreaCache struct {
	rdb *redis.Client
}

// NewRedisAreaCache wraps an existing client.
func NewRedisAreaCache(rdb *redis.Client) *RedisAreaCache {
	return &RedisAreaCache{rdb: rdb}
}

func (c *RedisAreaCache) Get(ctx context.Context, name string) (string, bool, error) {
	id, err := c.rdb.Get(ctx, "area:"+name).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (c *RedisAreaCache) Set(ctx context.Context, name, id string) error {
	return c.rdb.Set(ctx, "area:"+name, id, areaCacheTTL).Err()
}
