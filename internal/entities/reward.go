package entities

// ValueClass splits rewards into the common drip and the rare spikes
type ValueClass string

// Reward value classes
const (
	RewardCommon ValueClass = "common"
	RewardRare   ValueClass = "rare"
)

// RewardEvent is the outcome of one reward consideration. Granted=false
// events still carry the motivation index for tuning; only granted
// events reach the external inventory sink.
type RewardEvent struct {
	ID       string
	ActionID string
	Granted  bool
	Class    ValueClass
	Gold     int
	ItemID   string

	// MotivationIndex is diagnostic only and never gates the grant.
	MotivationIndex float64
}
