package entities

// Fallback values substituted for missing, null or empty source fields.
const (
	UnknownBookNameFormat = "Unknown Book #%d"
	UnknownPrice          = "N/A"
	NoDescription         = "(no description)"
)

// Book is the normalized record consumed by the renderers. Every field is
// always non-empty once produced by the importers package.
type Book struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}
