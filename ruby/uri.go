package ruby

import "strings"

// SyntheticMarker is the scheme prefix Sorbet uses for synthetic resources
// such as generated RBI payloads. It can appear either as the uri's own
// scheme or embedded inside an otherwise file-like path.
const SyntheticMarker = "sorbet:"

// AccessibleURI reports whether a location's uri points at a resource the
// caller can actually open. Only file-scheme uris (or bare filesystem
// paths, which carry no scheme) are accessible, and never ones that embed
// the synthetic sorbet: marker anywhere in their string form.
//
// The uri is inspected with plain string handling rather than url.Parse:
// editor-supplied uris routinely contain unescaped spaces and other
// filesystem-legal characters that a strict parser rejects.
func AccessibleURI(uri DocumentURI) bool {
	s := string(uri)
	if s == "" {
		return false
	}

	if strings.Contains(s, SyntheticMarker) {
		return false
	}

	scheme, ok := uriScheme(s)
	if !ok {
		// No scheme: treat as a bare filesystem path.
		return true
	}
	return scheme == "file"
}

// uriScheme extracts the scheme from a uri string. Returns ok=false when
// the string has no scheme part (a bare path). Windows drive letters like
// "C:" are not schemes.
func uriScheme(s string) (string, bool) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", false
	}

	candidate := s[:i]
	if len(candidate) == 1 {
		// Single letter before ':' is a drive designator, not a scheme.
		return "", false
	}
	for _, r := range candidate {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return "", false
		}
	}
	return strings.ToLower(candidate), true
}
