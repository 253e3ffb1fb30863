package em

// Stage is a step of one EM round. Each stage consumes only the output of
// the previous one.
type Stage int

const (
	StageSeedCost Stage = iota
	StageComputeRecipeDistances
	StageComputeNeighborsAndWeights
	StageAggregateMatches
	StageUpdateCost
	StageDone
)

var stageNames = [...]string{
	StageSeedCost:                   "seed_cost",
	StageComputeRecipeDistances:     "compute_recipe_distances",
	StageComputeNeighborsAndWeights: "compute_neighbors_and_weights",
	StageAggregateMatches:           "aggregate_matches",
	StageUpdateCost:                 "update_cost",
	StageDone:                       "done",
}

// String returns the snake_case stage name used in logs and metrics.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}

	return stageNames[s]
}
