package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

const (
	hhPageSize  = 50
	httpTimeout = 15 * time.Second
)

// Fetcher pages through the hh.ru /vacancies endpoint until the requested
// number of title-matching vacancies is collected or the API runs dry.
type Fetcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *slog.Logger
}

// NewFetcher constructs a fetcher with its own HTTP client. baseURL and
// userAgent come from configuration.
func NewFetcher(baseURL, userAgent string, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: httpTimeout},
		log:       logger,
	}
}

// Search returns at most req.Count vacancies whose titles contain req.Query.
//
// A non-200 answer, an unreachable API or an unreadable body ends the
// pagination: whatever was gathered so far is returned without error.
// Errors are returned only for an invalid request, a cancelled context or
// an item that breaks the payload contract.
func (f *Fetcher) Search(ctx context.Context, req search.Request) ([]model.Vacancy, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	log := f.log.With("search_id", uuid.NewString(), "query", req.Query, "area", req.Region)
	log.Info("search started", "count", req.Count)

	vacancies := make([]model.Vacancy, 0, req.Count)
	requests := 0

pages:
	for page := 0; len(vacancies) < req.Count; page++ {
		if err := ctx.Err(); err != nil {
			return vacancies, err
		}

		batch, err := f.fetchPage(ctx, req, page)
		requests++
		if err != nil {
			if ctx.Err() != nil {
				return vacancies, ctx.Err()
			}
			log.Warn("page fetch failed, treating as end of results", "page", page, "err", err)
			break
		}
		if len(batch.Items) == 0 {
			break // No more results
		}

		for _, item := range batch.Items {
			v, ok, err := Normalize(item, req.Query)
			if err != nil {
				return vacancies, fmt.Errorf("page %d: %w", page, err)
			}
			if !ok {
				continue
			}
			vacancies = append(vacancies, v)
			if len(vacancies) >= req.Count {
				break pages
			}
		}

		if len(batch.Items) < hhPageSize {
			break // Last page
		}
	}

	if len(vacancies) > req.Count {
		vacancies = vacancies[:req.Count]
	}
	log.Info("search finished", "found", len(vacancies), "requests", requests)
	return vacancies, nil
}

// pageURL builds the /vacancies query for one page.
func (f *Fetcher) pageURL(req search.Request, page int) string {
	params := url.Values{}
	params.Set("text", req.Query)
	params.Set("area", req.Region)
	params.Set("per_page", strconv.Itoa(hhPageSize))
	params.Set("page", strconv.Itoa(page))
	req.Filters.Apply(params)

	return f.baseURL + "/vacancies?" + params.Encode()
}

func (f *Fetcher) fetchPage(ctx context.Context, req search.Request, page int) (*Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.pageURL(req, page), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hh.ru returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var p Page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &p, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
