package hands

import (
	"fmt"

	"github.com/clocksight/clocksight/internal/geometry"
)

// ClockReading is the decoded time: Hour in 0-11, Minute in 0-59. It is the
// terminal artifact of a pipeline run.
type ClockReading struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the reading as "HH:MM".
func (r ClockReading) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Decode converts the two hand angles into a clock reading.
//
// Each hand's angle is taken at its far endpoint (the tip), clockwise from
// 12 o'clock, then mapped onto the dial:
//
//	hour   = floor(hourAngle / 360 * 12) mod 12
//	minute = floor(minuteAngle / 360 * 60) mod 60
//
// No correction is applied for the hour hand's natural drift between hour
// marks (at 3:30 the hour hand sits past the 3, which can push the floor to
// the wrong side near a mark boundary). This is accepted approximation
// error; callers needing sub-hour correction must apply it externally.
//
// Decode is pure arithmetic over validated geometry and never fails.
func Decode(pair HandPair, center geometry.Center) ClockReading {
	hourAngle := geometry.AngleFromCenter(pair.Hour.FarEndpoint(center), center)
	minuteAngle := geometry.AngleFromCenter(pair.Minute.FarEndpoint(center), center)

	return ClockReading{
		Hour:   int(hourAngle/360*12) % 12,
		Minute: int(minuteAngle/360*60) % 60,
	}
}
