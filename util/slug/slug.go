// Package slug derives URL path segments from post titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nonWord matches one character that is neither a word character (letter,
// digit or underscore, Unicode aware) nor '+'.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_+]`)

// Make replaces every non-word character of title except '+' with '-', one
// for one, so "Hello, World!" becomes "Hello--World-". An empty or
// whitespace-only title yields the Unix time of now in seconds.
func Make(title string, now time.Time) string {
	if strings.TrimSpace(title) == "" {
		return strconv.FormatInt(now.Unix(), 10)
	}
	return nonWord.ReplaceAllString(title, "-")
}

// FromTitle is Make at the current time.
func FromTitle(title string) string {
	return Make(title, time.Now())
}
