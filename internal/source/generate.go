package source

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var words = []string{
	"viewport", "buffer", "window", "frame", "extent", "offset", "scroll",
	"render", "measure", "item", "line", "page", "cell", "screen", "pane",
	"glow", "charm", "bubble", "tea", "gloss", "sparkle", "candy", "pixel",
}

// Generate returns n synthetic items. Titles and details only depend on
// seed; IDs are random.
func Generate(n int, seed uint64) []Item {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	items := make([]Item, max(0, n))
	for i := range items {
		detail := make([]string, 3+r.IntN(5))
		for j := range detail {
			detail[j] = words[r.IntN(len(words))]
		}
		items[i] = Item{
			ID:     uuid.NewString(),
			Title:  fmt.Sprintf("Item %d", i),
			Detail: strings.Join(detail, " "),
		}
	}
	return items
}
