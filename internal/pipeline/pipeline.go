// Package pipeline orchestrates the clock reading stages: preprocess,
// edge detection, face detection, center refinement, hand detection, and
// time decoding.
//
// The pipeline is a fail-fast sequence: each stage consumes the previous
// stage's output, and a miss at any stage ends the run with a typed failure
// naming that stage. Data flows strictly forward; no stage revisits or
// mutates an earlier result. A Pipeline holds no per-run state, so one
// value may serve any number of runs.
package pipeline

import (
	"fmt"
	"image"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/hands"
	"github.com/clocksight/clocksight/internal/imaging"
)

// Detectors bundles the external collaborators the pipeline consumes. A nil
// (or empty, for segments) return value signals a detection miss; the
// pipeline never inspects how a detector arrived at its answer.
type Detectors interface {
	// DetectFace returns the approximate clock face center and radius, or
	// nil when no face is found.
	DetectFace(planes *imaging.Planes) *geometry.Center

	// RefineCenter returns a refined hand pivot given the approximate face
	// center, or nil when refinement fails.
	RefineCenter(planes *imaging.Planes, approx geometry.Center) *geometry.Center

	// DetectSegments returns raw, unfiltered hand-candidate segments from
	// the edge mask. May be empty.
	DetectSegments(edges *imaging.EdgeMask) []geometry.Segment
}

// Pipeline runs the fixed stage sequence over one image at a time.
type Pipeline struct {
	detectors Detectors
	selector  hands.SelectorParams

	// EdgeLow and EdgeHigh are the Canny thresholds for the edge stage.
	EdgeLow  int
	EdgeHigh int

	log *logrus.Entry
}

// New creates a Pipeline using the given detectors and default parameters.
func New(detectors Detectors) *Pipeline {
	return &Pipeline{
		detectors: detectors,
		selector:  hands.DefaultSelectorParams(),
		EdgeLow:   imaging.DefaultEdgeLow,
		EdgeHigh:  imaging.DefaultEdgeHigh,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithSelector overrides the hand-candidate selection parameters.
func (p *Pipeline) WithSelector(params hands.SelectorParams) *Pipeline {
	p.selector = params
	return p
}

// WithLogger replaces the pipeline's log entry.
func (p *Pipeline) WithLogger(log *logrus.Entry) *Pipeline {
	p.log = log
	return p
}

// Machine states. The fail event is legal from every non-terminal state;
// each advance event is legal only from its predecessor, so a skipped or
// repeated stage is a programming error that surfaces as a transition
// error.
const (
	stateStart         = "start"
	statePreprocessed  = "preprocessed"
	stateEdgesDetected = "edges_detected"
	stateFaceDetected  = "face_detected"
	stateCenterRefined = "center_refined"
	stateHandsDetected = "hands_detected"
	stateTimeDecoded   = "time_decoded"
	stateFailed        = "failed"

	eventFail = "fail"
)

// stageEvent names the fsm event that advances into a stage's state.
func stageEvent(s Stage) string {
	return "to_" + stageState(s)
}

func stageState(s Stage) string {
	switch s {
	case StagePreprocessed:
		return statePreprocessed
	case StageEdgesDetected:
		return stateEdgesDetected
	case StageFaceDetected:
		return stateFaceDetected
	case StageCenterRefined:
		return stateCenterRefined
	case StageHandsDetected:
		return stateHandsDetected
	case StageTimeDecoded:
		return stateTimeDecoded
	}
	return stateFailed
}

// newMachine builds the per-run state machine. The machine exists to make
// the stage contract explicit and observable; the stage logic itself lives
// in Run.
func newMachine(log *logrus.Entry) *fsm.FSM {
	nonTerminal := []string{
		stateStart, statePreprocessed, stateEdgesDetected,
		stateFaceDetected, stateCenterRefined, stateHandsDetected,
	}

	return fsm.NewFSM(
		stateStart,
		fsm.Events{
			{Name: stageEvent(StagePreprocessed), Src: []string{stateStart}, Dst: statePreprocessed},
			{Name: stageEvent(StageEdgesDetected), Src: []string{statePreprocessed}, Dst: stateEdgesDetected},
			{Name: stageEvent(StageFaceDetected), Src: []string{stateEdgesDetected}, Dst: stateFaceDetected},
			{Name: stageEvent(StageCenterRefined), Src: []string{stateFaceDetected}, Dst: stateCenterRefined},
			{Name: stageEvent(StageHandsDetected), Src: []string{stateCenterRefined}, Dst: stateHandsDetected},
			{Name: stageEvent(StageTimeDecoded), Src: []string{stateHandsDetected}, Dst: stateTimeDecoded},
			{Name: eventFail, Src: nonTerminal, Dst: stateFailed},
		},
		fsm.Callbacks{
			"after_event": func(e *fsm.Event) {
				log.WithFields(logrus.Fields{
					"from":  e.Src,
					"to":    e.Dst,
					"event": e.Event,
				}).Debug("stage transition")
			},
		},
	)
}

// Run processes one image and produces one Result. Runs are independent;
// the pipeline keeps no state between invocations.
func (p *Pipeline) Run(img image.Image) *Result {
	m := newMachine(p.log)
	res := &Result{}

	fail := func(stage Stage, kind FailureKind, reason string) *Result {
		if err := m.Event(eventFail); err != nil {
			p.log.WithError(err).Error("state machine rejected fail transition")
		}
		res.Failure = &Failure{Stage: stage, Kind: kind, Reason: reason}
		p.log.WithFields(logrus.Fields{
			"stage":  stage,
			"kind":   kind,
			"reason": reason,
		}).Warn("pipeline failed")
		return res
	}

	advance := func(stage Stage) {
		if err := m.Event(stageEvent(stage)); err != nil {
			p.log.WithError(err).WithField("stage", stage).Error("state machine rejected transition")
		}
	}

	// Stage 1: preprocessing.
	planes, err := imaging.Preprocess(img)
	if err != nil {
		return fail(StagePreprocessed, FailCollaboratorMiss, err.Error())
	}
	res.Artifacts.Planes = planes
	advance(StagePreprocessed)

	// Stage 2: edge detection.
	edges := imaging.DetectEdges(planes.BW, p.EdgeLow, p.EdgeHigh)
	if edges.Count() == 0 {
		return fail(StageEdgesDetected, FailCollaboratorMiss, "no edges detected")
	}
	res.Artifacts.Edges = edges
	advance(StageEdgesDetected)

	// Stage 3: clock face detection.
	face := p.detectors.DetectFace(planes)
	if face == nil {
		return fail(StageFaceDetected, FailCollaboratorMiss, "no clock face found")
	}
	if !face.IsValid() {
		return fail(StageFaceDetected, FailInvalidGeometry, fmt.Sprintf("malformed face center %+v", face))
	}
	res.Artifacts.Face = face
	advance(StageFaceDetected)

	// Stage 4: center refinement.
	center := p.detectors.RefineCenter(planes, *face)
	if center == nil {
		return fail(StageCenterRefined, FailCollaboratorMiss, "center refinement found no pivot blob")
	}
	if !center.IsValid() {
		return fail(StageCenterRefined, FailInvalidGeometry, fmt.Sprintf("malformed refined center %+v", center))
	}
	res.Artifacts.Center = center
	advance(StageCenterRefined)

	// Stage 5: hand detection.
	segments := p.detectors.DetectSegments(edges)
	if len(segments) == 0 {
		return fail(StageHandsDetected, FailCollaboratorMiss, "no candidate segments detected")
	}
	res.Artifacts.Segments = segments

	candidates := hands.Select(segments, *center, p.selector)
	if len(candidates) == 0 {
		return fail(StageHandsDetected, FailInsufficientCandidates,
			fmt.Sprintf("no usable hand among %d segments", len(segments)))
	}
	res.Artifacts.Candidates = candidates

	pair := hands.Classify(candidates)
	if pair == nil {
		return fail(StageHandsDetected, FailInsufficientCandidates, "hand classification yielded no pair")
	}
	res.Artifacts.Hands = pair
	advance(StageHandsDetected)

	// Stage 6: time decoding. Pure arithmetic; cannot fail once reached.
	reading := hands.Decode(*pair, *center)
	advance(StageTimeDecoded)
	res.Reading = &reading

	p.log.WithFields(logrus.Fields{
		"reading":    reading.String(),
		"segments":   len(segments),
		"candidates": len(candidates),
	}).Info("clock read")

	return res
}
