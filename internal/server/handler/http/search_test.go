package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mkudelin/taskfolio/internal/models"
)

func TestSearchRequiresQuery(t *testing.T) {
	_, router := newTestRouter()

	rec := doRequest(t, router, "GET", "/api/search", nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a query, got %d", rec.Code)
	}
}

func TestSearchInvalidLimit(t *testing.T) {
	_, router := newTestRouter()

	for _, limit := range []string{"0", "101", "abc", "-5"} {
		rec := doRequest(t, router, "GET", "/api/search?q=milk&limit="+limit, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %s: expected 400, got %d", limit, rec.Code)
		}
	}
}

func TestSearch(t *testing.T) {
	f, router := newTestRouter()
	f.search.resp = &models.SearchResponse{
		Query: "milk",
		Results: []models.SearchResult{
			{EntityType: "task", EntityID: "t1", Title: "Buy milk", Href: "/tasks/t1", UpdatedAt: 100000},
		},
		Total: 1,
	}

	rec := doRequest(t, router, "GET", "/api/search?q=milk&limit=5", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.search.gotUserID != "u1" || f.search.gotQuery != "milk" || f.search.gotLimit != 5 {
		t.Errorf("unexpected search call: user '%s' query '%s' limit %d",
			f.search.gotUserID, f.search.gotQuery, f.search.gotLimit)
	}

	var got models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Total != 1 || got.Results[0].EntityType != "task" {
		t.Errorf("unexpected response: %+v", got)
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	f, router := newTestRouter()
	f.search.resp = &models.SearchResponse{Query: "milk"}

	rec := doRequest(t, router, "GET", "/api/search?q=milk", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.search.gotLimit != 0 {
		t.Errorf("expected limit 0 to be passed through, got %d", f.search.gotLimit)
	}
}
