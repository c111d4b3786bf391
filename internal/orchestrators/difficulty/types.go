package difficulty

import "github.com/wrenfall/rpg-core/internal/entities"

// RecordInput feeds one telemetry record into the controller. The
// state is session-scoped and passed explicitly; the controller
// mutates it in place.
type RecordInput struct {
	State     *entities.DifficultyState
	Telemetry *entities.EncounterTelemetry

	// ClassHP normalizes the pace/resource baseline for the class
	// being played. Zero means "use the catalog median".
	ClassHP int
}

// RecordOutput reports what the controller did with the record
type RecordOutput struct {
	State           *entities.DifficultyState
	Score           float64
	Recomputed      bool
	MicroAdjusted   bool
	ForcedRebalance bool
}

// SpawnMultiplierInput requests a scale factor for newly spawned
// enemies
type SpawnMultiplierInput struct {
	State *entities.DifficultyState
}

// SpawnMultiplierOutput carries the sampled scale factor
type SpawnMultiplierOutput struct {
	Multiplier float64
}

// Observer is a one-way sink for difficulty adjustments. The core
// never reads anything back from it.
type Observer interface {
	ObserveAdjustment(score, multiplier float64, flow entities.FlowState)
}
