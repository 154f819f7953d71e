package catalog

import (
	"fmt"
	"strings"

	"xactscope/internal"
	"xactscope/internal/util"
)

var requiredColumns = []string{"category", "selection", "description", "unit"}

// RowsFromTable treats the first row as the header and maps every following row
// onto the four catalog columns. Header matching ignores case and surrounding
// whitespace; short rows are padded with empty cells.
func RowsFromTable(table [][]string) ([]internal.CatalogRow, error) {
	if len(table) == 0 {
		return nil, nil
	}

	columns := map[string]int{}
	for i, h := range table[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := columns[key]; !ok {
			columns[key] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", name)
		}
	}

	out := make([]internal.CatalogRow, 0, len(table)-1)
	for i, cells := range table[1:] {
		out = append(out, internal.CatalogRow{
			Row:         i + 2,
			Category:    pickCell(cells, columns["category"]),
			Selection:   pickCell(cells, columns["selection"]),
			Description: pickCell(cells, columns["description"]),
			Unit:        pickCell(cells, columns["unit"]),
		})
	}
	return out, nil
}

// BuildItems keeps only rows where all four fields are present.
func BuildItems(rows []internal.CatalogRow) []internal.CatalogItem {
	out := make([]internal.CatalogItem, 0, len(rows))
	for _, r := range rows {
		category := strings.TrimSpace(r.Category)
		selection := strings.TrimSpace(r.Selection)
		description := strings.TrimSpace(r.Description)
		unit := strings.TrimSpace(r.Unit)
		if category == "" || selection == "" || description == "" || unit == "" {
			continue
		}
		out = append(out, internal.CatalogItem{
			Row:              r.Row,
			Category:         strings.ToLower(category),
			Selection:        strings.ToLower(selection),
			Description:      description,
			Unit:             unit,
			DescriptionClean: util.CleanText(description),
		})
	}
	return out
}

// Catalog is the read-only item list shared by all requests.
type Catalog struct {
	items []internal.CatalogItem
}

func NewCatalog(items []internal.CatalogItem) *Catalog {
	owned := make([]internal.CatalogItem, len(items))
	copy(owned, items)
	return &Catalog{items: owned}
}

func (c *Catalog) Len() int {
	return len(c.items)
}

func (c *Catalog) Items() []internal.CatalogItem {
	out := make([]internal.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Match returns every item whose cleaned description contains any of the
// tokens as a raw substring, in catalog order.
func (c *Catalog) Match(tokens []string) []internal.CatalogItem {
	var out []internal.CatalogItem
	for _, item := range c.items {
		for _, token := range tokens {
			if token != "" && strings.Contains(item.DescriptionClean, token) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Containing cleans keyword the same way descriptions are cleaned, so "p-trap"
// finds "P-Trap assembly".
func (c *Catalog) Containing(keyword string) []internal.CatalogItem {
	return c.Match([]string{util.CleanText(keyword)})
}

func pickCell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
