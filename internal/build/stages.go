package build

// A named phase of the build pipeline.
type Stage string

const (
	StageBuildTarball Stage = "build_tarball"
	StageBuildImage   Stage = "build_image"
	StageTest         Stage = "test"
	StagePush         Stage = "push"
	StageClean        Stage = "clean"
)

// Fixed execution order of the stages. Requested stages always run in this
// relative order regardless of the order they were selected in.
var stageOrder = []Stage{
	StageBuildTarball,
	StageBuildImage,
	StageTest,
	StagePush,
	StageClean,
}

// The set of stages requested for a run.
type StageSet map[Stage]struct{}

// Creates a stage set from the given stages.
func NewStageSet(stages ...Stage) StageSet {
	s := make(StageSet, len(stages))
	for _, stage := range stages {
		s[stage] = struct{}{}
	}
	return s
}

// Creates a stage set from stage names (e.g., parsed CLI values).
func ParseStageSet(names []string) StageSet {
	s := make(StageSet, len(names))
	for _, name := range names {
		s[Stage(name)] = struct{}{}
	}
	return s
}

// Reports whether the stage was requested.
func (s StageSet) Has(stage Stage) bool {
	_, ok := s[stage]
	return ok
}

// Returns the requested stages in their fixed execution order.
func (s StageSet) InOrder() []Stage {
	ordered := make([]Stage, 0, len(s))
	for _, stage := range stageOrder {
		if s.Has(stage) {
			ordered = append(ordered, stage)
		}
	}
	return ordered
}
