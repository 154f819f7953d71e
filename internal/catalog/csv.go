package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"xactscope/internal"
	"xactscope/internal/config"
)

// CSVSource reads a worksheet published to the web as CSV
// (File > Share > Publish to web), which needs no credentials.
type CSVSource struct {
	url        string
	httpClient *resty.Client
}

func NewCSVSource(cfg config.Config) (*CSVSource, error) {
	if err := cfg.Require("CATALOG_CSV_URL", cfg.CatalogCSVURL); err != nil {
		return nil, err
	}

	client := resty.New().
		SetTimeout(time.Duration(cfg.SheetsTimeoutMs)*time.Millisecond).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("Accept", "text/csv")

	return &CSVSource{url: strings.TrimSpace(cfg.CatalogCSVURL), httpClient: client}, nil
}

func (s *CSVSource) Name() string {
	return "csv"
}

func (s *CSVSource) Rows(ctx context.Context) ([]internal.CatalogRow, error) {
	resp, err := s.httpClient.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog csv: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog csv: status=%d", resp.StatusCode())
	}

	table, err := parseCSV(resp.String())
	if err != nil {
		return nil, err
	}
	return RowsFromTable(table)
}

func parseCSV(body string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, "\ufeff")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}
	return table, nil
}
