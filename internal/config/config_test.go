package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", " XLSX ")
	t.Setenv("RESULT_LIMIT", "not-a-number")
	t.Setenv("LOOKUP_LOG", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CatalogSource != "xlsx" {
		t.Fatalf("source=%q", cfg.CatalogSource)
	}
	if cfg.ResultLimit != 5 {
		t.Fatalf("limit=%d", cfg.ResultLimit)
	}
	if cfg.LookupLog {
		t.Fatal("lookup log should be disabled")
	}
	if cfg.SheetTab != "Data Pull" {
		t.Fatalf("tab=%q", cfg.SheetTab)
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("GOOGLE_CREDENTIALS_JSON", "  "); err == nil {
		t.Fatal("expected error for blank value")
	}
	if err := cfg.Require("GOOGLE_CREDENTIALS_JSON", "{}"); err != nil {
		t.Fatal(err)
	}
}
