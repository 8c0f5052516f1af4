// Package segment classifies short strings as URLs or prose and derives a
// structurally meaningful two-part split for each. The boundary resolver uses
// these splits to build anchor pairs.
package segment

import (
	"net/url"
	"strings"
	"unicode"
)

// IsURL reports whether s parses as an absolute http(s) URL with a host.
// Prose with an embedded link does not count; the whole string must be the
// URL.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SplitURL splits an absolute URL at the domain/path boundary:
// head = scheme://host, tail = path + query + fragment. A URL with no path
// component gets the bare host as its tail so the two parts still differ.
// ok is false when s is not a URL per IsURL.
func SplitURL(s string) (head, tail string, ok bool) {
	s = strings.TrimSpace(s)
	if !IsURL(s) {
		return "", "", false
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", false
	}

	head = u.Scheme + "://" + u.Host

	tail = u.EscapedPath()
	if u.RawQuery != "" {
		tail += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		tail += "#" + u.EscapedFragment()
	}
	if tail == "" || tail == "/" {
		tail = u.Host
	}
	return head, tail, true
}

// Span is the half-open byte range of one whitespace-delimited word in the
// string it was scanned from.
type Span struct {
	Start, End int
}

// WordSpans locates every word in s. Slicing s with the returned ranges
// preserves the original bytes, including any interior whitespace between
// adjacent words of a wider slice.
func WordSpans(s string) []Span {
	var spans []Span
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(s)})
	}
	return spans
}

// SplitProse splits text at its word-count midpoint. Both halves are sliced
// out of s, so each is a literal substring of the input. Single-word input
// puts the word in head and leaves tail empty; callers needing distinct parts
// must handle that case themselves.
func SplitProse(s string) (head, tail string) {
	spans := WordSpans(s)
	if len(spans) == 0 {
		return "", ""
	}
	mid := (len(spans) + 1) / 2
	head = s[spans[0].Start:spans[mid-1].End]
	if mid < len(spans) {
		tail = s[spans[mid].Start:spans[len(spans)-1].End]
	}
	return head, tail
}
