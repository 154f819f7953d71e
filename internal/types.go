package internal

// CatalogRow is one raw row of the catalog worksheet, keyed by the four columns
// the lookup cares about. Values are trimmed but otherwise untouched.
type CatalogRow struct {
	Row         int
	Category    string
	Selection   string
	Description string
	Unit        string
}

type CatalogItem struct {
	Row              int
	Category         string
	Selection        string
	Description      string
	Unit             string
	DescriptionClean string
}

type LookupStatus string

const (
	LookupNone     LookupStatus = "none"
	LookupSingle   LookupStatus = "single"
	LookupMultiple LookupStatus = "multiple"
)

type LookupLog struct {
	TraceID    string
	Input      string
	Quantity   string
	Action     string
	Status     LookupStatus
	Matches    int
	Related    int
	DurationMs float64
	CreatedAt  string
}
