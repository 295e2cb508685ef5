package search

// Resource link types surfaced to clients.
const (
	ResourceDetail     = "detail"
	ResourcePreview    = "preview"
	ResourceOnlineRead = "online-read"
	ResourceEbook      = "ebook"
	ResourceBorrow     = "borrow"
	ResourceSearch     = "search"
)

// CategoryDefault is the label used when no subject tag matched. Merge and
// enrichment treat it the same as an absent category.
const CategoryDefault = "Literature/Fiction"

// Resource is one outbound reference link attached to a candidate.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Candidate is a single provider's view of a book, scored against the
// query. score and workKey are comparison/lookup internals and never leave
// this package.
type Candidate struct {
	Title        string
	Author       string
	Synopsis     string
	Rating       *float64
	RatingSource string
	Category     string
	Cover        string
	Year         *int
	Source       string
	Sources      []string
	Resources    []Resource

	score   int
	workKey string
}

// Result is the public projection of a merged, enriched candidate.
type Result struct {
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Synopsis     string     `json:"synopsis"`
	Rating       *float64   `json:"rating"`
	RatingSource string     `json:"ratingSource"`
	Category     string     `json:"category"`
	Cover        string     `json:"cover"`
	Year         *int       `json:"year"`
	Source       string     `json:"source"`
	Resources    []Resource `json:"resources"`
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"`
	Source string `json:"source"`
}
