package sitter

import "math"

// Point is a cell on a character grid; 0,0 is the top-left corner.
type Point struct {
	X, Y int
}

// Project places each sitter on a width x height grid by latitude and
// longitude, north up. The result is index aligned with all. A grid
// dimension with no spread (one sitter, or all on one meridian) centres on
// that axis.
func Project(all []Sitter, width, height int) []Point {
	if len(all) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLng, maxLng := math.Inf(1), math.Inf(-1)
	for _, s := range all {
		minLat, maxLat = math.Min(minLat, s.Lat), math.Max(maxLat, s.Lat)
		minLng, maxLng = math.Min(minLng, s.Lng), math.Max(maxLng, s.Lng)
	}
	out := make([]Point, len(all))
	for i, s := range all {
		out[i] = Point{
			X: scale(s.Lng-minLng, maxLng-minLng, width),
			Y: scale(maxLat-s.Lat, maxLat-minLat, height),
		}
	}
	return out
}

func scale(v, span float64, cells int) int {
	if span == 0 {
		return (cells - 1) / 2
	}
	return int(math.Round(v / span * float64(cells-1)))
}

// Initial returns the marker drawn for s on a map.
func (s Sitter) Initial() string {
	for _, r := range s.Name {
		return string(r)
	}
	if s.ID != "" {
		return s.ID[:1]
	}
	return "?"
}
