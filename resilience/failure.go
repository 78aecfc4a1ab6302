package resilience

import "strings"

// FailureKind is a stable taxonomy tag for a service failure, used for
// logging and adaptive behavior.
type FailureKind int

const (
	// FailureUnknown is any failure not matched by a more specific rule.
	FailureUnknown FailureKind = iota
	// FailureWatchman indicates a Watchman file-watching problem.
	FailureWatchman
	// FailureConfig indicates a missing or broken Sorbet configuration.
	FailureConfig
	// FailureCrash indicates the service process crashed.
	FailureCrash
	// FailureTimeout indicates the service did not answer within the
	// deadline. Produced by the timeout guard, never by Classify: a
	// timeout yields no error to classify.
	FailureTimeout
)

// String returns the string representation of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureWatchman:
		return "watchman"
	case FailureConfig:
		return "config"
	case FailureCrash:
		return "crash"
	case FailureTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// classifyRules are evaluated in order; the first matching rule wins.
// Order matters because a message may contain several candidate
// substrings.
var classifyRules = []struct {
	kind      FailureKind
	substring []string
}{
	{FailureWatchman, []string{"watchman"}},
	{FailureConfig, []string{"config", "not configured"}},
	{FailureCrash, []string{"crash", "segfault", "sigsegv"}},
}

// Classify maps an error to its failure kind by case-insensitive
// substring matching against the error text. A nil error classifies as
// FailureUnknown.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		for _, sub := range rule.substring {
			if strings.Contains(msg, sub) {
				return rule.kind
			}
		}
	}
	return FailureUnknown
}
