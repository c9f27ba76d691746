package render

import "math"

// GalleryLayout returns a rows x cols tiling for n panels. Even counts get the
// most square exact tiling, odd counts fall back to a single column.
func GalleryLayout(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	if n%2 == 1 {
		return n, 1
	}
	rows = 1
	for r := int(math.Sqrt(float64(n))); r >= 1; r-- {
		if n%r == 0 {
			rows = r
			break
		}
	}
	return rows, n / rows
}
