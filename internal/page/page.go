// Package page slices materialized, ordered result sets into bounded pages
// addressed by opaque offset cursors.
//
// Paginate holds no state between calls: the cursor it hands back is only
// meaningful against the exact list it was derived from, so callers must
// re-run the same query deterministically on every page. Malformed cursors
// fail open to the start of the list, never to an error.
package page

import (
	"fmt"
	"strconv"
)

// Page size bounds. Caller-requested limits are clamped server-side.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NextPage describes how to fetch the page after this one.
type NextPage struct {
	Offset string `json:"offset"`
	Path   string `json:"path"`
	URI    string `json:"uri"`
}

// Result is one page of items plus the link to the next page, or nil at the
// end of the list.
type Result[T any] struct {
	Data []T       `json:"data"`
	Next *NextPage `json:"next_page"`
}

// Clamp normalizes a requested page size into [1, MaxPageSize]. Zero and
// negative values mean "unspecified" and get the default.
func Clamp(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// ParseOffset decodes an offset cursor. Missing, empty, or non-numeric
// cursors are treated as offset 0.
func ParseOffset(cursor string) int {
	if cursor == "" {
		return 0
	}
	n, err := strconv.Atoi(cursor)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Paginate returns one page of items and, when more remain, a next-page
// descriptor whose offset cursor resumes immediately after this page.
// basePath is the request path used to construct the followable link.
func Paginate[T any](items []T, cursor string, limit int, basePath string) Result[T] {
	limit = Clamp(limit)
	start := ParseOffset(cursor)
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	res := Result[T]{Data: items[start:end]}
	if start+limit < len(items) {
		offset := strconv.Itoa(end)
		link := fmt.Sprintf("%s?limit=%d&offset=%s", basePath, limit, offset)
		res.Next = &NextPage{Offset: offset, Path: link, URI: link}
	}
	return res
}
