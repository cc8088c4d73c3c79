package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ChipTick/internal/domain/models"
	"ChipTick/internal/repository"
	"ChipTick/internal/usecase"
	"ChipTick/pkg/cache"
	xhttp "ChipTick/pkg/http"
	"ChipTick/pkg/logger"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T, points []models.PricePoint) (*echo.Echo, string) {
	t.Helper()
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.json")
	pagePath := filepath.Join(dir, "index.html")

	doc := map[string]interface{}{
		"symbol": "TSLA", "name": "Tesla Stock", "unit": "chips", "history": points,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(historyPath, b, 0o644); err != nil {
		t.Fatal(err)
	}

	store := repository.NewFileHistoryStore(historyPath, "TSLA", "Tesla Stock", "chips")
	page := usecase.NewPageWriter(pagePath, historyPath, "Tesla Stock", "chips")
	h := NewHistoryEchoHandler(logger.Nop(), store, cache.NewMemoryCache(), page, pagePath, historyPath, time.Minute)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, pagePath
}

func doRequest(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var resp xhttp.APIResponse
	raw := json.RawMessage{}
	resp.Data = &raw
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func testPoints() []models.PricePoint {
	return []models.PricePoint{
		{Date: "2024-10-11", Price: 990},
		{Date: "2024-10-12", Price: 1005},
		{Date: "2024-10-13", Price: 995},
		{Date: "2024-10-14", Price: 1010},
	}
}

func TestHistoryReturnsFullSeries(t *testing.T) {
	e, _ := newTestHandler(t, testPoints())
	rec := doRequest(e, "/api/history")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var doc models.History
	decodeData(t, rec, &doc)
	if len(doc.History) != 4 || doc.Symbol != "TSLA" {
		t.Fatalf("unexpected doc: %+v", doc)
	}
}

func TestHistoryTailWithN(t *testing.T) {
	e, _ := newTestHandler(t, testPoints())
	rec := doRequest(e, "/api/history?n=2")
	var doc models.History
	decodeData(t, rec, &doc)
	if len(doc.History) != 2 {
		t.Fatalf("tail length = %d, want 2", len(doc.History))
	}
	if doc.History[0].Date != "2024-10-13" {
		t.Fatalf("tail starts at %s, want 2024-10-13", doc.History[0].Date)
	}
}

func TestHistoryRejectsNegativeN(t *testing.T) {
	e, _ := newTestHandler(t, testPoints())
	rec := doRequest(e, "/api/history?n=-5")
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Status)
	}
}

func TestLatestReturnsNewestPoint(t *testing.T) {
	e, _ := newTestHandler(t, testPoints())
	rec := doRequest(e, "/api/latest")
	var quote models.LatestQuote
	decodeData(t, rec, &quote)
	if quote.Date != "2024-10-14" || quote.Price != 1010 {
		t.Fatalf("quote = %+v", quote)
	}
	if quote.Unit != "chips" {
		t.Fatalf("unit = %q, want chips", quote.Unit)
	}
}

func TestLatestEmptyHistoryIsNotFound(t *testing.T) {
	e, _ := newTestHandler(t, nil)
	rec := doRequest(e, "/api/latest")
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Status)
	}
}

func TestPageIsMaterializedAndServed(t *testing.T) {
	e, pagePath := newTestHandler(t, testPoints())
	rec := doRequest(e, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "chart.js") {
		t.Fatalf("page body missing chart.js include")
	}
	if _, err := os.Stat(pagePath); err != nil {
		t.Fatalf("page not written: %v", err)
	}
}

func TestHistoryDocumentIsServedRaw(t *testing.T) {
	e, _ := newTestHandler(t, testPoints())
	rec := doRequest(e, "/history.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc models.History
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("raw doc: %v", err)
	}
	if len(doc.History) != 4 {
		t.Fatalf("raw doc has %d points, want 4", len(doc.History))
	}
}
