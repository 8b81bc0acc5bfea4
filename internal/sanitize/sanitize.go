// Package sanitize provides HTML sanitization for user-supplied text.
// Uses bluemonday's strict policy, which strips every element and escapes
// HTML special characters.
package sanitize

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict policy. bluemonday policies are safe for
// concurrent use once built.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML from input and escapes what remains.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}

// IsPlainText reports whether input contains no markup. Characters the
// policy merely escapes, such as ' or &, still count as plain text.
func IsPlainText(input string) bool {
	return html.UnescapeString(Text(input)) == input
}
