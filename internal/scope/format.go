package scope

import (
	"fmt"
	"strings"

	"xactscope/internal"
)

const (
	clarificationMessage = "I couldn’t find a matching line item in the Xactimate master sheet. Please clarify the material, size, or description."
	multipleMessageFmt   = "Found %d matching line items. Please clarify which one you mean:"
)

// FormatScopeLine renders "(action) CATEGORY SELECTION – description – quantity UNIT".
func FormatScopeLine(item internal.CatalogItem, quantity, action string) string {
	return fmt.Sprintf("(%s) %s %s – %s – %s %s",
		action,
		strings.ToUpper(item.Category),
		strings.ToUpper(item.Selection),
		item.Description,
		quantity,
		strings.ToUpper(item.Unit),
	)
}

// FormatItemLine renders "CATEGORY SELECTION – description (unit)" for related
// items and disambiguation candidates.
func FormatItemLine(item internal.CatalogItem) string {
	return fmt.Sprintf("%s %s – %s (%s)",
		strings.ToUpper(item.Category),
		strings.ToUpper(item.Selection),
		item.Description,
		item.Unit,
	)
}
