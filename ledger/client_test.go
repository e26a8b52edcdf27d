package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/finance"
)

type capturedRequest struct {
	Cmd         string       `json:"cmd"`
	UserID      int64        `json:"user_id"`
	Type        finance.Kind `json:"type"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory"`
	Amount      float64      `json:"amount"`
	Comment     string       `json:"comment"`
	Limit       int          `json:"limit"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Config{
		URL:        srv.URL,
		OwnerID:    42,
		Timeout:    2 * time.Second,
		SummaryTTL: time.Minute,
	})
	return c, srv
}

func okBody(data string) string {
	return `{"ok":true,"data":` + data + `}`
}

func TestAddSendsCommandContract(t *testing.T) {
	var got capturedRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(okBody(`{}`)))
	})

	amount, _ := finance.ParseAmount("1 500")
	d := finance.Draft{
		Kind:        finance.KindExpense,
		Category:    "Повседневные расходы",
		Subcategory: "Продукты",
		Amount:      amount,
		Comment:     "молоко",
	}
	if err := c.Add(context.Background(), d); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Cmd != "add" || got.UserID != 42 {
		t.Errorf("cmd=%q user_id=%d", got.Cmd, got.UserID)
	}
	if got.Type != finance.KindExpense || got.Category != d.Category || got.Subcategory != d.Subcategory {
		t.Errorf("payload mismatch: %+v", got)
	}
	if got.Amount != 1500 {
		t.Errorf("amount = %v", got.Amount)
	}
}

func TestAddRefusesIncompleteDraft(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(okBody(`{}`)))
	})
	amount, _ := finance.ParseAmount("100")
	// Expense without a subcategory must never reach the wire.
	d := finance.Draft{Kind: finance.KindExpense, Category: "Дом", Amount: amount}
	if err := c.Add(context.Background(), d); err == nil {
		t.Fatal("Add accepted an incomplete draft")
	}
	if called {
		t.Fatal("incomplete draft reached the ledger")
	}
}

func TestSummaryParsesPayload(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(okBody(`{
			"month_label":"Август 2026",
			"expenses":12345.67,
			"incomes":50000,
			"balance":37654.33,
			"initial_balance":10000,
			"current_balance":47654.33
		}`)))
	})
	s, err := c.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.MonthLabel != "Август 2026" {
		t.Errorf("month = %q", s.MonthLabel)
	}
	if !s.Expenses.Equal(decimal.RequireFromString("12345.67")) {
		t.Errorf("expenses = %s", s.Expenses)
	}
}

func TestSummaryCachedWithinTTL(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(okBody(`{"month_label":"m"}`)))
	})
	for i := 0; i < 3; i++ {
		if _, err := c.Summary(context.Background()); err != nil {
			t.Fatalf("Summary: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("summary fetched %d times, want 1 (cached)", calls)
	}
}

func TestMutationInvalidatesSummaryCache(t *testing.T) {
	summaries := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Cmd == "summary_month" {
			summaries++
		}
		w.Write([]byte(okBody(`{"month_label":"m"}`)))
	})

	if _, err := c.Summary(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Summary(context.Background()); err != nil {
		t.Fatal(err)
	}
	if summaries != 2 {
		t.Errorf("summary fetched %d times, want refetch after mutation", summaries)
	}
}

func TestRecentSendsLimit(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Cmd != "get_recent_transactions" || req.Limit != 10 {
			t.Errorf("cmd=%q limit=%d", req.Cmd, req.Limit)
		}
		w.Write([]byte(okBody(`{"transactions":[
			{"row_id":5,"date":"2026-08-29 10:00","type":"расход","category":"Дом","subcategory":"Ремонт","amount":2500,"comment":""}
		]}`)))
	})
	recs, err := c.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 1 || recs[0].RowID != 5 || recs[0].Kind != finance.KindExpense {
		t.Errorf("records = %+v", recs)
	}
}

func TestErrorFlagIsHardFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"sheet locked"}`))
	})
	if _, err := c.Summary(context.Background()); err == nil {
		t.Fatal("false ok flag not reported as error")
	}
}

func TestNonJSONBodyIsHardFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})
	if _, err := c.Summary(context.Background()); err == nil {
		t.Fatal("non-JSON body not reported as error")
	}
}

func TestSummaryCacheExpiry(t *testing.T) {
	cache := newSummaryCache(30 * time.Second)
	base := time.Now()
	now := base
	cache.now = func() time.Time { return now }

	cache.Put(MonthSummary{MonthLabel: "m"})
	if _, ok := cache.Get(); !ok {
		t.Fatal("fresh entry not served")
	}
	now = base.Add(31 * time.Second)
	if _, ok := cache.Get(); ok {
		t.Fatal("expired entry served")
	}
}
