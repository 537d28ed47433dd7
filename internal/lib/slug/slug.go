package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9_-]`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Make turns arbitrary display text into a URL-safe identifier:
// lowercase, whitespace collapsed to single hyphens, "&" expanded to
// "-and-", everything outside [a-z0-9_-] stripped, hyphen runs collapsed,
// leading/trailing hyphens trimmed.
//
// An empty or all-punctuation input yields an empty string; callers must
// treat that as a validation failure, never persist it.
func Make(text string) string {
	s := strings.ToLower(text)
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "&", "-and-")
	s = invalidRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithTimeSuffix disambiguates a colliding slug by appending the last six
// digits of the current epoch seconds. A second collision on the suffixed
// value within the same second is accepted as residual risk; there is no
// retry loop.
func WithTimeSuffix(base string) string {
	return fmt.Sprintf("%s-%06d", base, time.Now().Unix()%1_000_000)
}
