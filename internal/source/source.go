// Package source produces the collections the demo scrolls through.
package source

// Item is one entry of a collection. Items are compared by value, so two
// entries with the same ID, title and detail are the same item.
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func (i Item) String() string {
	return i.Title
}
