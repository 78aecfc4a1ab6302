package ruby

import "strings"

// Signature markers recognized anywhere in a document. Any one of them
// means the file participates in Sorbet's signature system, independent
// of its declared strictness level.
var signatureMarkers = []string{
	"sig {",
	"sig do",
	"# typed:",
	"extend T::Sig",
}

// HasSignatures reports whether the document opts into Sorbet signatures:
// a sig block opener, a typed sigil comment, or an `extend T::Sig`
// declaration anywhere in the text.
func HasSignatures(text string) bool {
	for _, marker := range signatureMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
