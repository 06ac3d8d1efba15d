package domain

import "math"

// Point is a position in screen space; Y grows downward.
type Point struct {
	X float64
	Y float64
}

// ArcPoints samples the progress arc as count+1 points on a circle.
//
// The arc starts at 12 o'clock and sweeps clockwise over (1-fraction) of the
// circle, so it is empty at fraction 1 and a full ring at fraction 0.
func ArcPoints(center Point, radius, fraction float64, count int) []Point {
	if count < 1 {
		count = 1
	}
	fraction = math.Max(0, math.Min(1, fraction))

	start := -math.Pi / 2
	sweep := 2 * math.Pi * (1 - fraction)

	points := make([]Point, 0, count+1)
	for i := 0; i <= count; i++ {
		angle := start + sweep*float64(i)/float64(count)
		points = append(points, Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return points
}
