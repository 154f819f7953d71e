package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"xactscope/internal"
	"xactscope/internal/config"
)

var reSpreadsheetID = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SheetsSource reads the catalog worksheet through the Sheets API using a
// service account.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	tab           string
	timeout       time.Duration
	maxAttempts   int
	backoffBase   time.Duration
	limiter       *RateLimiter
}

func NewSheetsSource(ctx context.Context, cfg config.Config) (*SheetsSource, error) {
	if err := cfg.Require("GOOGLE_CREDENTIALS_JSON", cfg.GoogleCredentialsJSON); err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.GoogleCredentialsJSON), sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newSheetsSource(svc, cfg)
}

func newSheetsSource(svc *sheets.Service, cfg config.Config) (*SheetsSource, error) {
	id := strings.TrimSpace(cfg.SheetID)
	if id == "" {
		id = SpreadsheetIDFromURL(cfg.SheetURL)
	}
	if id == "" {
		return nil, errors.New("missing SHEET_ID or a valid SHEET_URL")
	}

	tab := strings.TrimSpace(cfg.SheetTab)
	if tab == "" {
		tab = "Data Pull"
	}

	attempts := cfg.SheetsMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	return &SheetsSource{
		service:       svc,
		spreadsheetID: id,
		tab:           tab,
		timeout:       time.Duration(cfg.SheetsTimeoutMs) * time.Millisecond,
		maxAttempts:   attempts,
		backoffBase:   250 * time.Millisecond,
		limiter:       NewRateLimiter(cfg.SheetsRateLimitRPS),
	}, nil
}

// SpreadsheetIDFromURL extracts the document ID from a docs.google.com URL.
// Bare IDs are returned unchanged.
func SpreadsheetIDFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := reSpreadsheetID.FindStringSubmatch(raw); len(m) > 1 {
		return m[1]
	}
	if raw != "" && !strings.ContainsAny(raw, "/:?") {
		return raw
	}
	return ""
}

func (s *SheetsSource) Name() string {
	return "sheets"
}

func (s *SheetsSource) Rows(ctx context.Context) ([]internal.CatalogRow, error) {
	rng := quoteSheetName(s.tab)

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := s.limiter.WaitTurn(ctx); err != nil {
			return nil, err
		}

		callCtx := ctx
		cancel := func() {}
		if s.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		}
		resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(callCtx).Do()
		cancel()
		if err == nil {
			return RowsFromTable(valuesToTable(resp.Values))
		}

		lastErr = err
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && !isRetryableStatus(apiErr.Code) {
			return nil, fmt.Errorf("sheets api error: status=%d: %w", apiErr.Code, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < s.maxAttempts {
			backoff := s.backoffBase*time.Duration(1<<(attempt-1)) + time.Duration(rand.Intn(100))*time.Millisecond
			if err := sleepContext(ctx, backoff); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("sheets request failed after %d attempts: %w", s.maxAttempts, lastErr)
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func valuesToTable(values [][]interface{}) [][]string {
	out := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			if v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprint(v))
		}
		out = append(out, cells)
	}
	return out
}
