package source

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter returns the items whose titles fuzzy match pattern, best match
// first. An empty pattern returns items unchanged.
func Filter(items []Item, pattern string) []Item {
	if strings.TrimSpace(pattern) == "" {
		return items
	}
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	matches := fuzzy.Find(pattern, titles)
	filtered := make([]Item, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, items[m.Index])
	}
	return filtered
}
