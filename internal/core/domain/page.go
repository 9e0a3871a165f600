package domain

// RawPage represents opaque HTML bytes produced by a page source.
// It is the page source's output before tokenisation.
type RawPage struct {
	// SourceID links to the source that produced this page.
	SourceID string

	// URI is the original location (file path or URL).
	URI string

	// Content is the raw HTML bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs.
	Metadata map[string]any
}

// ChangeType represents the type of page change.
type ChangeType int

const (
	// ChangeCreated indicates a new page.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified page.
	ChangeUpdated

	// ChangeDeleted indicates a removed page.
	ChangeDeleted
)

// RawPageChange represents a change event from a watching page source.
type RawPageChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Page is the affected page. For ChangeDeleted only the URI is set.
	Page RawPage
}
