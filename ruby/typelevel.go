package ruby

import (
	"regexp"
	"strings"
)

// TypeLevel is the strictness level declared by a file's `# typed:` sigil.
type TypeLevel int

const (
	// TypeLevelNone means the file declares no sigil in the scanned window.
	TypeLevelNone TypeLevel = iota
	// TypeLevelIgnore means Sorbet skips the file entirely.
	TypeLevelIgnore
	// TypeLevelFalse enables only syntax and constant resolution errors.
	TypeLevelFalse
	// TypeLevelTrue enables standard type checking.
	TypeLevelTrue
	// TypeLevelStrict requires all methods to have signatures.
	TypeLevelStrict
	// TypeLevelStrong disallows T.untyped.
	TypeLevelStrong
)

// String returns the sigil token for the level, or "none".
func (l TypeLevel) String() string {
	switch l {
	case TypeLevelIgnore:
		return "ignore"
	case TypeLevelFalse:
		return "false"
	case TypeLevelTrue:
		return "true"
	case TypeLevelStrict:
		return "strict"
	case TypeLevelStrong:
		return "strong"
	default:
		return "none"
	}
}

// sigilWindow is how many leading lines are scanned for the sigil.
// Sorbet itself only honors sigils near the top of the file.
const sigilWindow = 50

// sigilPattern matches a `# typed:` sigil line. Spacing around the colon
// and the level token is irregular in real codebases.
var sigilPattern = regexp.MustCompile(`^\s*#\s*typed:\s*(ignore|false|true|strict|strong)\b`)

// TypeLevelOf scans the first 50 lines of text for a `# typed:` sigil and
// returns the declared level. A sigil at line 50 or later (zero-indexed)
// does not count. Returns TypeLevelNone when no sigil is found.
func TypeLevelOf(text string) TypeLevel {
	if text == "" {
		return TypeLevelNone
	}

	rest := text
	for line := 0; line < sigilWindow && rest != ""; line++ {
		var cur string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			cur, rest = rest[:i], rest[i+1:]
		} else {
			cur, rest = rest, ""
		}

		m := sigilPattern.FindStringSubmatch(cur)
		if m == nil {
			continue
		}

		switch m[1] {
		case "ignore":
			return TypeLevelIgnore
		case "false":
			return TypeLevelFalse
		case "true":
			return TypeLevelTrue
		case "strict":
			return TypeLevelStrict
		case "strong":
			return TypeLevelStrong
		}
	}

	return TypeLevelNone
}
