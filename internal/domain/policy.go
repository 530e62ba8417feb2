package domain

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what a run does when one day fails.
type ErrorPolicy string

const (
	// PolicySkip logs the failed day and goes on with the rest.
	PolicySkip ErrorPolicy = "skip"
	// PolicyAbort stops the run with the first error.
	PolicyAbort ErrorPolicy = "abort"
)

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySkip, PolicyAbort:
		return p, nil
	case "":
		return PolicySkip, nil
	}
	return "", fmt.Errorf("unknown error policy %q, expected %q or %q", s, PolicySkip, PolicyAbort)
}
