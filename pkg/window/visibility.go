package window

type Rect struct {
	X, Y, W, H int
}

func (r Rect) intersect(o Rect) int {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return (x1 - x0) * (y1 - y0)
}

// VisibleFraction is the share of win covered by the union of areas,
// assuming the areas do not overlap each other.
func VisibleFraction(win Rect, areas []Rect) float64 {
	total := win.W * win.H
	if total <= 0 {
		return 0
	}
	covered := 0
	for _, a := range areas {
		covered += win.intersect(a)
	}
	return min(float64(covered)/float64(total), 1)
}
