// Package pathutil collapses dynamic URL paths into templates so metric
// labels stay bounded.
package pathutil

import (
	"regexp"
	"strings"
)

// Bookstore IDs carry a source prefix ("usr:" for user entries, "ext:" for
// directory records), which keeps this pattern from swallowing static
// segments like /bookstores/search or /bookstores/mine.
var bookstoreID = regexp.MustCompile(`^/bookstores/(usr|ext):[^/]+$`)

// NormalizePath replaces an embedded bookstore ID with the ":id" template:
//
//	/bookstores/usr:1a2b3c4d  -> /bookstores/:id
//	/bookstores/ext:130588    -> /bookstores/:id
//
// Query strings and trailing slashes are stripped first. Everything else,
// including static routes and unprefixed segments, passes through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if bookstoreID.MatchString(path) {
		return "/bookstores/:id"
	}
	return path
}
