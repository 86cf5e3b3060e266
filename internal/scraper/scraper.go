// Package scraper collects day-ahead market hours straight from the OTE web
// site, one page per delivery day. It is an independent producer of records
// with the same shape as the dam_prices table; it shares the extraction
// core's number parsing but none of its workbook machinery.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"otecli/internal/dataprocessing"
	"otecli/pkg/contracts/domain"
)

const (
	// Old format (Czech page, before the 2025-10-01 cutover).
	baseURLOld = "https://www.ote-cr.cz/cs/kratkodobe-trhy/elektrina/denni-trh"
	// New format (English page, from the cutover on).
	baseURLNew = "https://www.ote-cr.cz/en/short-term-markets/electricity/day-ahead-market"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultMaxRetries = 3
	defaultRetryDelay = 5 * time.Second
)

// NewFormatDate is the day the OTE site switched to the new page layout.
var NewFormatDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

// Client fetches and parses day-ahead market pages with polite pacing and
// bounded retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration

	baseURLOld string
	baseURLNew string
}

// NewClient creates a scraping client that issues at most one request per
// delay interval.
func NewClient(delay time.Duration) *Client {
	if delay <= 0 {
		delay = time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		baseURLOld: baseURLOld,
		baseURLNew: baseURLNew,
	}
}

// ScrapeDate fetches the hourly records for one delivery day, dispatching to
// the page layout in force on that date.
func (c *Client) ScrapeDate(ctx context.Context, day time.Time) ([]domain.DAMPrice, error) {
	dateStr := day.Format("2006-01-02")

	var url string
	if !day.Before(NewFormatDate) {
		url = fmt.Sprintf("%s?date=%s&time_resolution=PT60M", c.baseURLNew, dateStr)
	} else {
		url = fmt.Sprintf("%s?date=%s", c.baseURLOld, dateStr)
	}

	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if !day.Before(NewFormatDate) {
		return parseNewTable(doc, dateStr), nil
	}
	return parseOldTable(doc, dateStr), nil
}

// ScrapeDateWithRetry wraps ScrapeDate with bounded retries and linear
// backoff. A date that exhausts all attempts yields zero rows with a warning;
// the scrape of the remaining range continues.
func (c *Client) ScrapeDateWithRetry(ctx context.Context, day time.Time) []domain.DAMPrice {
	dateStr := day.Format("2006-01-02")
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		records, err := c.ScrapeDate(ctx, day)
		if err == nil {
			return records
		}
		slog.Warn("scrape attempt failed",
			slog.String("date", dateStr),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.maxRetries),
			slog.String("error", err.Error()))
		if attempt < c.maxRetries {
			select {
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil
			}
		}
	}
	slog.Error("all scrape attempts failed", slog.String("date", dateStr))
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) (*html.Node, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "cs,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseHourToken parses the first cell of a market table row: "00-01" style
// intervals resolve to the end hour, anything else falls through to plain
// integer parsing. Unlike the workbook hour normalizer there is no range
// check; the page only ever lists real delivery hours.
func ParseHourToken(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 5 && s[2] == '-' {
		if h, err := strconv.Atoi(s[3:]); err == nil {
			return h, true
		}
	}
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return h, true
}

// parseOldTable reads the pre-cutover Czech table:
// Hodina | Cena | Množství | Saldo DT | Export | Import.
func parseOldTable(doc *html.Node, date string) []domain.DAMPrice {
	table := findReportTable(doc, "Hodina", false)
	if table == nil {
		slog.Warn("no data table found", slog.String("date", date))
		return nil
	}

	var out []domain.DAMPrice
	for _, row := range tableDataRows(table) {
		hour, vals, ok := splitRow(row)
		if !ok {
			continue
		}
		out = append(out, domain.DAMPrice{
			Date:   date,
			Hour:   hour,
			Price:  valueAt(vals, 0),
			Volume: valueAt(vals, 1),
			Saldo:  valueAt(vals, 2),
			Export: valueAt(vals, 3),
			Import: valueAt(vals, 4),
		})
	}
	return out
}

// parseNewTable reads the post-cutover English table; the purchase/sale
// product breakdown columns between volume and saldo are skipped.
func parseNewTable(doc *html.Node, date string) []domain.DAMPrice {
	table := findReportTable(doc, "Time interval", true)
	if table == nil {
		slog.Warn("no data table found", slog.String("date", date))
		return nil
	}

	var out []domain.DAMPrice
	for _, row := range tableDataRows(table) {
		hour, vals, ok := splitRow(row)
		if !ok {
			continue
		}
		out = append(out, domain.DAMPrice{
			Date:   date,
			Hour:   hour,
			Price:  valueAt(vals, 0),
			Volume: valueAt(vals, 1),
			Saldo:  valueAt(vals, 6),
			Export: valueAt(vals, 7),
			Import: valueAt(vals, 8),
		})
	}
	return out
}

// splitRow resolves a table row into its delivery hour and the td cell texts
// after the label cell. Summary rows and rows without a parseable hour are
// dropped.
func splitRow(cells []*html.Node) (int, []string, bool) {
	if len(cells) == 0 {
		return 0, nil, false
	}
	label := strings.TrimSpace(textContent(cells[0]))
	switch strings.ToLower(label) {
	case "", "celkem", "total", "sum":
		return 0, nil, false
	}
	hour, ok := ParseHourToken(label)
	if !ok {
		return 0, nil, false
	}

	var vals []string
	for _, cell := range cells[1:] {
		if cell.Data == "td" {
			vals = append(vals, textContent(cell))
		}
	}
	return hour, vals, true
}

// valueAt parses the i-th data cell with the shared Czech number rules, nil
// when the cell is absent or unparsable.
func valueAt(vals []string, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return dataprocessing.ParseNumber(vals[i])
}
