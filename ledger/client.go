// Package ledger talks to the external ledger service over HTTP. The ledger
// is the system of record; this client only submits and queries through its
// fixed command contract and never retries a failed call on its own.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/core/logger"
	"github.com/m3rciful/finbot/finance"
)

// Config holds the ledger endpoint settings.
type Config struct {
	// URL is the ledger web-app endpoint; every command is a POST to it.
	URL string
	// OwnerID is the authorized identity marker included in every request.
	OwnerID int64
	// Timeout bounds a single call end to end.
	Timeout time.Duration
	// SummaryTTL bounds how long a month summary may be served from cache.
	SummaryTTL time.Duration
}

// Client executes ledger commands. Mutating commands invalidate the summary
// cache synchronously before reporting success.
type Client struct {
	url     string
	ownerID int64
	http    *http.Client
	summary *summaryCache
}

// New builds a Client with a transport tuned the same way as the Telegram
// one: bounded dial and response-header timeouts, pooled connections.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	ttl := cfg.SummaryTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &Client{
		url:     cfg.URL,
		ownerID: cfg.OwnerID,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		summary: newSummaryCache(ttl),
	}
}

// MonthSummary is the aggregated month screen returned by summary_month.
type MonthSummary struct {
	MonthLabel     string          `json:"month_label"`
	Expenses       decimal.Decimal `json:"expenses"`
	Incomes        decimal.Decimal `json:"incomes"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// AnalysisItem is one (category, amount) row of an analysis report.
type AnalysisItem struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Analysis is a titled, ordered per-category breakdown.
type Analysis struct {
	Title string         `json:"title"`
	Items []AnalysisItem `json:"items"`
}

// Record is one stored transaction as returned by get_recent_transactions.
type Record struct {
	RowID       int64           `json:"row_id"`
	Date        string          `json:"date"`
	Kind        finance.Kind    `json:"type"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Comment     string          `json:"comment"`
}

// UpdateField names a Record field update_transaction may change.
type UpdateField string

const (
	FieldAmount  UpdateField = "amount"
	FieldComment UpdateField = "comment"
)

// Add submits a complete draft. Incomplete drafts are refused locally so a
// partial record can never reach the ledger.
func (c *Client) Add(ctx context.Context, d finance.Draft) error {
	if !d.Complete() {
		return fmt.Errorf("ledger: draft is not complete")
	}
	err := c.do(ctx, "add", map[string]any{
		"type":        d.Kind,
		"category":    d.Category,
		"subcategory": d.Subcategory,
		"amount":      d.Amount.InexactFloat64(),
		"comment":     d.Comment,
	}, nil)
	if err != nil {
		return err
	}
	c.summary.Invalidate()
	return nil
}

// Summary returns the current month screen, served from cache within its
// TTL. Any mutating command invalidates the cache first, so a summary read
// after a mutation is never stale relative to it.
func (c *Client) Summary(ctx context.Context) (MonthSummary, error) {
	if s, ok := c.summary.Get(); ok {
		logger.Debug(ctx, "ledger", "summary.cache",
			slog.String("cache", "hit"),
		)
		return s, nil
	}
	var s MonthSummary
	if err := c.do(ctx, "summary_month", nil, &s); err != nil {
		return MonthSummary{}, err
	}
	c.summary.Put(s)
	return s, nil
}

// Analyze fetches a per-category breakdown for a kind and period
// ("today", "month" or "year").
func (c *Client) Analyze(ctx context.Context, kind finance.Kind, period string) (Analysis, error) {
	var a Analysis
	err := c.do(ctx, "analysis", map[string]any{
		"kind":   kind,
		"period": period,
	}, &a)
	return a, err
}

// SetBalance overwrites the current balance.
func (c *Client) SetBalance(ctx context.Context, amount decimal.Decimal) error {
	err := c.do(ctx, "set_balance", map[string]any{
		"balance": amount.InexactFloat64(),
	}, nil)
	if err != nil {
		return err
	}
	c.summary.Invalidate()
	return nil
}

// Recent returns up to limit most recent records, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]Record, error) {
	var out struct {
		Transactions []Record `json:"transactions"`
	}
	err := c.do(ctx, "get_recent_transactions", map[string]any{
		"limit": limit,
	}, &out)
	return out.Transactions, err
}

// Update changes one field of a stored record.
func (c *Client) Update(ctx context.Context, rowID int64, field UpdateField, value any) error {
	err := c.do(ctx, "update_transaction", map[string]any{
		"row_id": rowID,
		"field":  field,
		"value":  value,
	}, nil)
	if err != nil {
		return err
	}
	c.summary.Invalidate()
	return nil
}

// Delete removes a stored record.
func (c *Client) Delete(ctx context.Context, rowID int64) error {
	err := c.do(ctx, "delete_transaction", map[string]any{
		"row_id": rowID,
	}, nil)
	if err != nil {
		return err
	}
	c.summary.Invalidate()
	return nil
}

// envelope is the ledger response wrapper: a success flag, an error string
// on failure, a command-specific payload on success.
type envelope struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, cmd string, payload map[string]any, out any) error {
	body := make(map[string]any, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	body["cmd"] = cmd
	body["user_id"] = c.ownerID

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ledger: marshal %s: %w", cmd, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("ledger: build %s request: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error(ctx, "ledger", "call.fail",
			slog.String("cmd", cmd),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return fmt.Errorf("ledger: %s: %w", cmd, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("ledger: read %s response: %w", cmd, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Error(ctx, "ledger", "call.badbody",
			slog.String("cmd", cmd),
			slog.Int("http_code", resp.StatusCode),
			slog.String("payload", logger.SanitizeLimit(string(data), 256)),
		)
		return fmt.Errorf("ledger: %s returned non-JSON body", cmd)
	}
	if !env.OK {
		msg := env.Error
		if msg == "" {
			msg = "unknown ledger error"
		}
		return fmt.Errorf("ledger: %s failed: %s", cmd, msg)
	}

	logger.Debug(ctx, "ledger", "call.ok",
		slog.String("cmd", cmd),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("ledger: decode %s payload: %w", cmd, err)
		}
	}
	return nil
}
