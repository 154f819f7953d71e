package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"xactscope/internal/config"
)

func TestCSVSourceRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("\ufeffCategory,Selection,Description,Unit\n" +
			"plm,sink,\"Sink - single, stainless\",EA\n" +
			"fnc,bs,Baseboard,\n"))
	}))
	defer srv.Close()

	src, err := NewCSVSource(config.Config{CatalogCSVURL: srv.URL, SheetsTimeoutMs: 5000})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].Description != "Sink - single, stainless" {
		t.Fatalf("quoted cell mangled: %q", rows[0].Description)
	}
	if items := BuildItems(rows); len(items) != 1 {
		t.Fatalf("items=%d", len(items))
	}
}

func TestCSVSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src, err := NewCSVSource(config.Config{CatalogCSVURL: srv.URL, SheetsTimeoutMs: 5000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Rows(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewCSVSourceRequiresURL(t *testing.T) {
	if _, err := NewCSVSource(config.Config{}); err == nil {
		t.Fatal("expected error")
	}
}
