// Package canvas defines the opaque drawing surface the renderer paints
// onto and the fixed stage pipeline every shape declares itself against
// (spec §4.6), grounded on original_source/src/railway/feature/mod.rs's
// Stage/StageSet/Shape/Canvas contract.
package canvas

// Stage is one step of the fixed eleven-stage render pipeline (spec
// §4.6 step 5). Stages run in declaration order for every feature group
// before the next group starts.
type Stage uint8

const (
	Back Stage = iota
	Casing
	AbandonedBase
	AbandonedMarking
	LimitedBase
	LimitedMarking
	Base
	Marking
	MarkerCasing
	MarkerBase
	MarkerMarking

	stageCount
)

func (s Stage) String() string {
	switch s {
	case Back:
		return "Back"
	case Casing:
		return "Casing"
	case AbandonedBase:
		return "AbandonedBase"
	case AbandonedMarking:
		return "AbandonedMarking"
	case LimitedBase:
		return "LimitedBase"
	case LimitedMarking:
		return "LimitedMarking"
	case Base:
		return "Base"
	case Marking:
		return "Marking"
	case MarkerCasing:
		return "MarkerCasing"
	case MarkerBase:
		return "MarkerBase"
	case MarkerMarking:
		return "MarkerMarking"
	default:
		return "Stage(?)"
	}
}

// Stages is the fixed pipeline order the renderer iterates for every
// feature group (spec §4.6 step 5).
var Stages = [stageCount]Stage{
	Back, Casing,
	AbandonedBase, AbandonedMarking,
	LimitedBase, LimitedMarking,
	Base, Marking,
	MarkerCasing, MarkerBase, MarkerMarking,
}

// StageSet is a bitmask of stages a Shape paints in. Unlike the
// original's StageSet(stage as u16) -- which ORs the stage's ordinal
// directly and so can never represent Stage::Back (ordinal 0) -- this
// shifts by ordinal so every stage, including Back, is representable.
type StageSet uint16

// EmptySet is the stage set containing no stages.
func EmptySet() StageSet { return 0 }

// Of builds a StageSet containing exactly the given stages.
func Of(stages ...Stage) StageSet {
	var s StageSet
	for _, st := range stages {
		s = s.Add(st)
	}
	return s
}

// Add returns s with stage added.
func (s StageSet) Add(stage Stage) StageSet {
	return s | (1 << uint(stage))
}

// AddSet returns the union of s and other.
func (s StageSet) AddSet(other StageSet) StageSet {
	return s | other
}

// Contains reports whether stage is a member of s.
func (s StageSet) Contains(stage Stage) bool {
	return s&(1<<uint(stage)) != 0
}
