package hands

import (
	"sort"

	"github.com/clocksight/clocksight/internal/geometry"
)

// HandPair is the classification output: the segment acting as hour hand and
// the segment acting as minute hand. Invariant: Hour.Length() <= Minute.Length().
//
// When only one candidate was resolvable the same segment fills both roles;
// see Classify.
type HandPair struct {
	Hour   geometry.Segment `json:"hour"`
	Minute geometry.Segment `json:"minute"`
}

// Classify orders hand candidates into an (hour, minute) pair using length
// as the discriminant: the minute hand is conventionally the longer one.
//
//   - 0 candidates: returns nil, signalling detection failure.
//   - 1 candidate: returns a pair with the same segment as both hands. This
//     is a deliberate fallback for perfectly overlapping hands (or a dial
//     where only one hand resolved), not an error.
//   - 2 or more: the longest becomes the minute hand, the second longest the
//     hour hand. Extra candidates beyond two are ignored; upstream selection
//     should already have capped the set.
//
// Sorting is stable, so equal-length candidates keep their input order and
// ties break deterministically.
func Classify(candidates []geometry.Segment) *HandPair {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return &HandPair{Hour: candidates[0], Minute: candidates[0]}
	}

	byLength := make([]geometry.Segment, len(candidates))
	copy(byLength, candidates)
	sort.SliceStable(byLength, func(i, j int) bool {
		return byLength[i].Length() > byLength[j].Length()
	})

	return &HandPair{Hour: byLength[1], Minute: byLength[0]}
}
