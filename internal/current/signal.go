package current

import (
	"math"
	"time"
)

// Vector3 is a 3D vector in m/s, east-north-up.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Signal is one published sample of the current velocity.
type Signal struct {
	Time     time.Time `json:"timestamp"`
	Frame    string    `json:"frame"`
	Velocity Vector3   `json:"velocity"`
}

// Speed returns the horizontal magnitude of the velocity.
func (s Signal) Speed() float64 {
	return math.Hypot(s.Velocity.X, s.Velocity.Y)
}
