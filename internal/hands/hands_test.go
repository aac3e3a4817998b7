package hands

import (
	"testing"

	"github.com/clocksight/clocksight/internal/geometry"
)

var origin = geometry.Center{Point: geometry.Point{X: 0, Y: 0}, Radius: 100}

func TestSelect_RejectsFarFromCenter(t *testing.T) {
	segments := []geometry.Segment{
		geometry.Seg(200, 200, 300, 300), // nowhere near the pivot
		geometry.Seg(5, 5, 0, -90),       // attached at the pivot
	}

	got := Select(segments, origin, DefaultSelectorParams())
	if len(got) != 1 {
		t.Fatalf("Select: got %d candidates, want 1", len(got))
	}
	if got[0] != segments[1] {
		t.Errorf("Select kept the wrong segment: %+v", got[0])
	}
}

func TestSelect_AngularDuplicateKeepsFirst(t *testing.T) {
	// Two segments pointing almost the same way (separation < 15 degrees),
	// both passing near the center: only the first-encountered survives.
	first := geometry.Seg(0, 0, 0, -100)  // straight up, 0 degrees
	second := geometry.Seg(2, 2, 10, -95) // ~6 degrees

	got := Select([]geometry.Segment{first, second}, origin, DefaultSelectorParams())
	if len(got) != 1 {
		t.Fatalf("Select: got %d candidates, want 1", len(got))
	}
	if got[0] != first {
		t.Errorf("Select kept %+v, want the first-encountered segment", got[0])
	}
}

func TestSelect_SpatialDuplicate(t *testing.T) {
	// Parallel edge responses for one physical hand: angularly distinct
	// (~30 degrees apart) but with endpoints close together, and with
	// endpoint order reversed between the two detections.
	first := geometry.Seg(0, 0, 0, -40)
	reversed := geometry.Seg(20, -35, 8, -8)

	got := Select([]geometry.Segment{first, reversed}, origin, DefaultSelectorParams())
	if len(got) != 1 {
		t.Fatalf("Select: got %d candidates, want 1 (reversed duplicate should merge)", len(got))
	}
}

func TestSelect_TwoDistinctHands(t *testing.T) {
	up := geometry.Seg(0, 0, 0, -100)
	right := geometry.Seg(0, 0, 50, 0)
	noise := geometry.Seg(0, 0, -60, 0) // third hand-like segment, over the cap

	got := Select([]geometry.Segment{up, right, noise}, origin, DefaultSelectorParams())
	if len(got) != 2 {
		t.Fatalf("Select: got %d candidates, want 2", len(got))
	}
	if got[0] != up || got[1] != right {
		t.Errorf("Select order: got %+v, want [up right]", got)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	segments := []geometry.Segment{
		geometry.Seg(0, 0, 0, -100),
		geometry.Seg(1, 1, 8, -97),
		geometry.Seg(0, 0, 50, 0),
		geometry.Seg(250, 0, 300, 0),
	}

	first := Select(segments, origin, DefaultSelectorParams())
	second := Select(segments, origin, DefaultSelectorParams())

	if len(first) != len(second) {
		t.Fatalf("Select not deterministic: %d vs %d candidates", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Select not deterministic at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSelect_SkipsInvalidGeometry(t *testing.T) {
	nan := geometry.Segment{
		A: geometry.Point{X: 0, Y: 0},
		B: geometry.Point{X: 0, Y: 0},
	}
	nan.B.X = nanValue()

	got := Select([]geometry.Segment{nan, geometry.Seg(0, 0, 0, -80)}, origin, DefaultSelectorParams())
	if len(got) != 1 {
		t.Fatalf("Select: got %d candidates, want 1 (NaN segment dropped)", len(got))
	}
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}

func TestClassify_Empty(t *testing.T) {
	if pair := Classify(nil); pair != nil {
		t.Errorf("Classify(nil): got %+v, want nil", pair)
	}
}

func TestClassify_SingleCandidateDuplicates(t *testing.T) {
	only := geometry.Seg(0, 0, 0, -70)

	pair := Classify([]geometry.Segment{only})
	if pair == nil {
		t.Fatal("Classify: got nil for a single candidate")
	}
	if pair.Hour != only || pair.Minute != only {
		t.Errorf("Classify: single candidate must fill both roles, got %+v", pair)
	}
}

func TestClassify_ByLength(t *testing.T) {
	long := geometry.Seg(0, 0, 0, -100) // length 100, points up
	short := geometry.Seg(0, 0, 50, 0)  // length 50, points right

	pair := Classify([]geometry.Segment{long, short})
	if pair == nil {
		t.Fatal("Classify returned nil")
	}
	if pair.Minute != long {
		t.Errorf("minute hand: got %+v, want the 100-length segment", pair.Minute)
	}
	if pair.Hour != short {
		t.Errorf("hour hand: got %+v, want the 50-length segment", pair.Hour)
	}
	if pair.Hour.Length() > pair.Minute.Length() {
		t.Error("invariant violated: hour hand longer than minute hand")
	}
}

func TestClassify_ExtraCandidatesIgnored(t *testing.T) {
	segs := []geometry.Segment{
		geometry.Seg(0, 0, 0, -60),
		geometry.Seg(0, 0, 100, 0),
		geometry.Seg(0, 0, 0, 80),
	}

	pair := Classify(segs)
	if pair == nil {
		t.Fatal("Classify returned nil")
	}
	// Only the two longest matter: 100 (minute) and 80 (hour).
	if pair.Minute.Length() != 100 || pair.Hour.Length() != 80 {
		t.Errorf("Classify: got lengths (%.0f, %.0f), want (80, 100)",
			pair.Hour.Length(), pair.Minute.Length())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		pair       HandPair
		wantHour   int
		wantMinute int
	}{
		{
			// Hour hand at 90 degrees (3 o'clock), minute at 180 (the 6).
			name: "3:30",
			pair: HandPair{
				Hour:   geometry.Seg(0, 0, 60, 0),
				Minute: geometry.Seg(0, 0, 0, 90),
			},
			wantHour:   3,
			wantMinute: 30,
		},
		{
			// Both hands at 12: midnight.
			name: "12:00",
			pair: HandPair{
				Hour:   geometry.Seg(0, 0, 0, -60),
				Minute: geometry.Seg(0, 0, 0, -90),
			},
			wantHour:   0,
			wantMinute: 0,
		},
		{
			// Hour at 270 degrees (the 9), minute at 90 (the 3).
			name: "9:15",
			pair: HandPair{
				Hour:   geometry.Seg(0, 0, -55, 0),
				Minute: geometry.Seg(0, 0, 95, 0),
			},
			wantHour:   9,
			wantMinute: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.pair, origin)
			if got.Hour != tt.wantHour || got.Minute != tt.wantMinute {
				t.Errorf("Decode: got %s, want %02d:%02d", got, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestDecode_NoHourDriftCorrection(t *testing.T) {
	// At a real 3:30 the hour hand sits halfway between the 3 and the 4,
	// at 105 degrees. floor(105/360*12) = 3: the raw band still reads 3.
	// No drift correction is applied; this pins the documented policy.
	pair := HandPair{
		Hour:   geometry.Seg(0, 0, 58, 15.5), // ~105 degrees
		Minute: geometry.Seg(0, 0, 0, 90),     // 180 degrees
	}

	got := Decode(pair, origin)
	if got.Hour != 3 || got.Minute != 30 {
		t.Errorf("Decode: got %s, want 03:30", got)
	}
}

func TestDecode_OverlappingHands(t *testing.T) {
	// Degenerate single-candidate pair: same segment in both roles.
	seg := geometry.Seg(0, 0, 0, -80) // pointing at 12
	pair := HandPair{Hour: seg, Minute: seg}

	got := Decode(pair, origin)
	if got.Hour != 0 || got.Minute != 0 {
		t.Errorf("Decode: got %s, want 00:00", got)
	}
}

func TestReadingString(t *testing.T) {
	r := ClockReading{Hour: 3, Minute: 5}
	if r.String() != "03:05" {
		t.Errorf("String: got %q, want %q", r.String(), "03:05")
	}
}
