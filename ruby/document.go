package ruby

// DocumentURI identifies a text document, typically as a file:// URI.
type DocumentURI string

// Position in a text document, expressed as zero-based line and character
// offsets.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range in a text document, expressed as start and end positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location represents a location inside a resource.
type Location struct {
	URI   DocumentURI `json:"uri"`
	Range Range       `json:"range"`
}

// Document is an open text document presented to the adapter.
// Version increments with each edit and is used for cache keys.
type Document struct {
	URI     DocumentURI
	Version int
	Text    string
}

// TypeInfo is the type information Sorbet reports for a position.
type TypeInfo struct {
	Type      string `json:"type"`
	Signature string `json:"signature,omitempty"`
}

// MarkupContent is a string of content with a markup kind.
type MarkupContent struct {
	Kind  string `json:"kind"` // "plaintext" or "markdown"
	Value string `json:"value"`
}

// Hover is the content shown in a hover popup, optionally bound to the
// range of the hovered symbol.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}
