package analysisclient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/pkg/helpers"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		MLBaseURL:      baseURL,
		ConnectTimeout: time.Second,
		ReadTimeout:    2 * time.Second,
	}
}

func TestAnalyzePassesThroughBody(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"overall_advice_hint":"save more","monthly_spend":412.5}`))
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL))
	got := a.Analyze(helpers.TestCtx(), "u1", helpers.Ptr(6))

	if gotPath != "/analyze/u1" {
		t.Fatalf("request path = %q", gotPath)
	}
	if gotQuery != "window=6" {
		t.Fatalf("request query = %q", gotQuery)
	}
	if got["overall_advice_hint"] != "save more" {
		t.Fatalf("body not passed through: %v", got)
	}
	if got["monthly_spend"] != 412.5 {
		t.Fatalf("numeric field not passed through: %v", got)
	}
}

func TestAnalyzeOmitsWindowWhenAbsent(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL))
	a.Analyze(helpers.TestCtx(), "u1", nil)

	if gotQuery != "" {
		t.Fatalf("query = %q, want none", gotQuery)
	}
}

func TestAnalyzeNonOKDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL))
	got := a.Analyze(helpers.TestCtx(), "u1", nil)

	assertErrorShaped(t, got)
}

func TestAnalyzeUnreachableDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := NewAdapter(testConfig(srv.URL))
	got := a.Analyze(helpers.TestCtx(), "u1", nil)

	assertErrorShaped(t, got)
}

func TestAnalyzeMalformedBodyDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	a := NewAdapter(testConfig(srv.URL))
	got := a.Analyze(helpers.TestCtx(), "u1", nil)

	assertErrorShaped(t, got)
}

func assertErrorShaped(t *testing.T, got map[string]any) {
	t.Helper()
	msg, ok := got["error"].(string)
	if !ok {
		t.Fatalf("degraded result = %v, want an error-shaped mapping", got)
	}
	if !strings.HasPrefix(msg, "ML service error: ") {
		t.Fatalf("degraded message = %q", msg)
	}
}
