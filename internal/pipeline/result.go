package pipeline

import (
	"fmt"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/hands"
	"github.com/clocksight/clocksight/internal/imaging"
)

// Stage identifies one step of the detection pipeline. Stage names appear
// in failure results and logs.
type Stage string

// Pipeline stages, in execution order.
const (
	StagePreprocessed  Stage = "Preprocessed"
	StageEdgesDetected Stage = "EdgesDetected"
	StageFaceDetected  Stage = "FaceDetected"
	StageCenterRefined Stage = "CenterRefined"
	StageHandsDetected Stage = "HandsDetected"
	StageTimeDecoded   Stage = "TimeDecoded"
)

// FailureKind classifies why a stage failed.
type FailureKind string

const (
	// FailCollaboratorMiss means an external detector returned nothing.
	FailCollaboratorMiss FailureKind = "collaborator_miss"

	// FailInsufficientCandidates means fewer than one usable hand segment
	// survived filtering.
	FailInsufficientCandidates FailureKind = "insufficient_candidates"

	// FailInvalidGeometry means a collaborator produced malformed geometry
	// (non-finite coordinates).
	FailInvalidGeometry FailureKind = "invalid_geometry"
)

// Failure describes a terminal stage miss. A failed stage ends the run; no
// retries, no partial results propagate forward.
type Failure struct {
	Stage  Stage
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pipeline failed at %s: %s", f.Stage, f.Reason)
}

// Artifacts holds the last computed value of each stage of a run. They are
// a diagnostic side channel for visualization and logging and carry no
// contract beyond that; on a failed run, artifacts past the failing stage
// are zero.
type Artifacts struct {
	Planes     *imaging.Planes
	Edges      *imaging.EdgeMask
	Face       *geometry.Center
	Center     *geometry.Center
	Segments   []geometry.Segment
	Candidates []geometry.Segment
	Hands      *hands.HandPair
}

// Result is the outcome of one pipeline run: either a decoded reading or a
// typed failure naming the stage that missed. Exactly one of Reading and
// Failure is set.
type Result struct {
	Reading   *hands.ClockReading
	Failure   *Failure
	Artifacts Artifacts
}

// OK reports whether the run decoded a time.
func (r *Result) OK() bool {
	return r.Failure == nil
}
