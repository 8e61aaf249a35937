package tiling

import "github.com/1broseidon/wintk/internal/geom"

// Direction is an arrow-key direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

// Navigate returns the index of the rect reached by moving from current in
// dir. The nearest rect whose center lies in that direction wins; when there
// is none the search wraps to the far edge, preferring the same row or column.
func Navigate(current int, dir Direction, rects []geom.Rect) int {
	if current < 0 || current >= len(rects) {
		return 0
	}

	cx, cy := center(rects[current])

	bestIdx := -1
	bestDist := -1
	for i, r := range rects {
		if i == current {
			continue
		}
		rx, ry := center(r)

		inDirection := false
		switch dir {
		case DirUp:
			inDirection = ry < cy
		case DirDown:
			inDirection = ry > cy
		case DirLeft:
			inDirection = rx < cx
		case DirRight:
			inDirection = rx > cx
		}
		if !inDirection {
			continue
		}

		// Manhattan distance to the closest rect in the direction
		dist := abs(rx-cx) + abs(ry-cy)
		if bestIdx == -1 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}

	// Wrap: pick the rect furthest in the opposite direction.
	bestScore := 0
	for i, r := range rects {
		if i == current {
			continue
		}
		rx, ry := center(r)

		var score int
		switch dir {
		case DirUp:
			score = ry*10000 - abs(rx-cx)
		case DirDown:
			score = -ry*10000 - abs(rx-cx)
		case DirLeft:
			score = rx*10000 - abs(ry-cy)
		case DirRight:
			score = -rx*10000 - abs(ry-cy)
		}
		if bestIdx == -1 || score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}
	return current
}

// Cycle steps through count items, wrapping at either end.
func Cycle(current, delta, count int) int {
	if count <= 0 {
		return 0
	}
	return ((current+delta)%count + count) % count
}

// Closest returns the index of the rect whose center is nearest to pt, or -1
// when rects is empty.
func Closest(pt geom.Point, rects []geom.Rect) int {
	bestIdx := -1
	bestDist := -1
	for i, r := range rects {
		rx, ry := center(r)
		dist := abs(pt.X-rx) + abs(pt.Y-ry)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	return bestIdx
}

func center(r geom.Rect) (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
