package scope

import (
	"fmt"
	"strings"

	"xactscope/internal"
	"xactscope/internal/catalog"
)

const (
	defaultQuantity = "1"
	defaultAction   = "+"
	maxLimit        = 5
)

type Request struct {
	Input    string
	Quantity string
	Action   string
}

type Response struct {
	MatchedScopeItem string                `json:"matched_scope_item"`
	RelatedItems     []string              `json:"related_items"`
	Status           internal.LookupStatus `json:"-"`
	Matches          int                   `json:"-"`
}

// Service answers scope lookups against one catalog. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	limit   int
}

// NewService caps candidate and related lists at limit, which is clamped to
// 1..5.
func NewService(c *catalog.Catalog, limit int) *Service {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	return &Service{catalog: c, limit: limit}
}

func (s *Service) CatalogSize() int {
	return s.catalog.Len()
}

func (s *Service) Lookup(req Request) Response {
	req = req.WithDefaults()

	matches := s.catalog.Match(NormalizeQuery(req.Input))
	switch {
	case len(matches) == 0:
		return Response{
			MatchedScopeItem: clarificationMessage,
			RelatedItems:     []string{},
			Status:           internal.LookupNone,
		}
	case len(matches) > 1:
		candidates := make([]string, 0, s.limit)
		for _, m := range matches {
			if len(candidates) >= s.limit {
				break
			}
			candidates = append(candidates, FormatItemLine(m))
		}
		return Response{
			MatchedScopeItem: fmt.Sprintf(multipleMessageFmt, len(matches)),
			RelatedItems:     candidates,
			Status:           internal.LookupMultiple,
			Matches:          len(matches),
		}
	}

	match := matches[0]
	return Response{
		MatchedScopeItem: FormatScopeLine(match, req.Quantity, req.Action),
		RelatedItems:     s.related(req.Input, match),
		Status:           internal.LookupSingle,
		Matches:          1,
	}
}

func (s *Service) related(input string, match internal.CatalogItem) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, keyword := range RelatedKeywords(input) {
		for _, item := range s.catalog.Containing(keyword) {
			if len(out) >= s.limit {
				return out
			}
			if item == match {
				continue
			}
			line := FormatItemLine(item)
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			out = append(out, line)
		}
	}
	return out
}

// WithDefaults fills a blank quantity with "1" and a blank action with "+".
func (req Request) WithDefaults() Request {
	if strings.TrimSpace(req.Quantity) == "" {
		req.Quantity = defaultQuantity
	} else {
		req.Quantity = strings.TrimSpace(req.Quantity)
	}
	if strings.TrimSpace(req.Action) == "" {
		req.Action = defaultAction
	} else {
		req.Action = strings.TrimSpace(req.Action)
	}
	return req
}
