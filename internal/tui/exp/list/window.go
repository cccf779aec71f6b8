package list

import "math"

// ChangeEvent is a half-open window [Start, End) of item indexes.
type ChangeEvent struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether index is inside the window.
func (e ChangeEvent) Contains(index int) bool {
	return index >= e.Start && index < e.End
}

// Len is the number of items in the window.
func (e ChangeEvent) Len() int {
	return e.End - e.Start
}

// window is the result of one range calculation.
type window struct {
	start, end int
	// translate is the leading offset of the content block for this window.
	translate float64
}

// clampScroll turns the raw scroll reading of the target into the offset the
// range calculation uses. Readings past the extent are pinned to it, and the
// position of the list inside a delegated target is subtracted.
func clampScroll(raw, extent, offset float64) float64 {
	if raw > extent {
		raw = extent + offset
	}
	return max(0, raw-offset)
}

// computeWindow maps a scroll offset to the window of items to materialize.
//
// The end is one full page of lines past the line the offset falls on, and
// the start is kept at least a page plus a line before the end once the end
// is rounded up to a whole line. The buffer then widens both sides.
func computeWindow(g Geometry, axes axisSet, scroll float64, buffer int) window {
	n := float64(g.Count)
	perLine := float64(g.PerLine)
	perPage := float64(g.PerPage)
	childScroll := g.Child.Along(axes.scroll)
	b := float64(buffer)

	index := scroll / g.Extent * n / perLine

	end := math.Min(n, math.Ceil(index)*perLine+perLine*(perPage+1))

	maxStartEnd := end
	if mod := math.Mod(end, perLine); mod != 0 {
		maxStartEnd = end + perLine - mod
	}
	maxStart := math.Max(0, maxStartEnd-perPage*perLine-perLine)
	start := math.Min(maxStart, math.Floor(index)*perLine)

	var translate float64
	if g.Count > 0 {
		translate = childScroll*math.Ceil(start/perLine) - childScroll*math.Min(start, b)
	}

	if math.IsNaN(start) {
		start = -1
	}
	if math.IsNaN(end) {
		end = -1
	}
	start = math.Max(0, start-b)
	end = math.Min(n, end+b)
	end = math.Max(end, start)

	return window{start: int(start), end: int(end), translate: translate}
}

// scrollOffsetFor is the scroll position that brings index to the top of the
// view with the buffered items above it.
func scrollOffsetFor(g Geometry, axes axisSet, index, buffer int) float64 {
	c := g.Child.Along(axes.scroll)
	return math.Floor(float64(index)/float64(g.PerLine))*c - c*float64(min(index, buffer))
}
