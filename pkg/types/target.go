package types

import (
	"fmt"
	"regexp"
)

var schemePattern = regexp.MustCompile(`^(https?)://`)

// Target represents the URL handed to the external scanner.
type Target struct {
	URL    string `json:"url"`
	Scheme string `json:"scheme"`
}

// ParseTarget accepts a URL beginning with http:// or https://. The match is a
// case-sensitive prefix check; the rest of the string is passed through untouched.
func ParseTarget(raw string) (Target, error) {
	if raw == "" {
		return Target{}, fmt.Errorf("target cannot be empty")
	}

	m := schemePattern.FindStringSubmatch(raw)
	if m == nil {
		return Target{}, fmt.Errorf("invalid URL %q: must start with http:// or https://", raw)
	}

	return Target{URL: raw, Scheme: m[1]}, nil
}

func (t Target) String() string {
	return t.URL
}
