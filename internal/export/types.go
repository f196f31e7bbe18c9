// Package export writes a JSON listing of a loaded catalog for other tools.
package export

// FormatVersion is the listing layout written by Write.
const FormatVersion = 1

// Manifest describes a catalog listing and how to interpret it.
type Manifest struct {
	FormatVersion int    `json:"format_version"`
	CreatedAt     string `json:"created_at"`
	SourceDir     string `json:"source_dir"`
	Records       int    `json:"records"`
	RecordsFile   string `json:"records_file"`
}

// Entry is one light curve row in records.jsonl.
type Entry struct {
	Name     string            `json:"name"`
	Source   string            `json:"source"`
	Field    int               `json:"field"`
	Tile     int               `json:"tile"`
	Color    string            `json:"color"`
	Samples  int               `json:"samples"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Listing is a loaded catalog listing.
type Listing struct {
	Manifest Manifest
	Entries  []Entry
}
