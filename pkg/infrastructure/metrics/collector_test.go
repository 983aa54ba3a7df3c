package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollector_ObserveRunExposed(t *testing.T) {
	collector := NewCollector()
	collector.ObserveRun(120, 3, 7, 5, 250*time.Millisecond)
	collector.ObserveError()

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		"doi_runs_total 1",
		"doi_run_errors_total 1",
		"doi_rows_reconciled 120",
		"doi_unmatched_sales_lines 3",
		"doi_excluded_rows 7",
		"doi_window_days 5",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestCollector_RegistriesAreIsolated(t *testing.T) {
	first := NewCollector()
	second := NewCollector()
	first.ObserveRun(1, 0, 0, 7, time.Millisecond)

	server := httptest.NewServer(second.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("Failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read metrics body: %v", err)
	}

	if strings.Contains(string(body), "doi_runs_total 1") {
		t.Error("Expected the second collector to start from zero")
	}
}
