package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Square returns n².
func Square(n float64) float64 {
	return n * n
}
