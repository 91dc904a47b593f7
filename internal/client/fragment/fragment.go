// Package fragment mirrors the search query into a URL fragment such as "#search=git%20log".
package fragment

import (
	"fmt"
	"net/url"
	"strings"
)

// Key is the fragment parameter holding the query.
const Key = "search"

// Encode renders the fragment for query, including the leading '#'.
// A blank query yields "" so the fragment is cleared.
func Encode(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}
	// Spaces render as %20; a literal '+' is already %2B.
	return "#" + Key + "=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// Decode extracts the query from a fragment with or without the leading '#'.
// A fragment without the search key yields "".
func Decode(fragment string) (string, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return "", nil
	}

	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}
	return values.Get(Key), nil
}

// FromURL extracts the query from the fragment of a full URL.
func FromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	return Decode(u.EscapedFragment())
}
