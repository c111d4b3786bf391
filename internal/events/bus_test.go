package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfall/rpg-core/internal/entities"
)

type orderedListener struct {
	id       string
	priority int
	failWith error
	log      *[]string
}

func (l *orderedListener) HandleEvent(event Event) error {
	*l.log = append(*l.log, l.id)
	return l.failWith
}

func (l *orderedListener) Priority() int { return l.priority }
func (l *orderedListener) ID() string    { return l.id }

func TestEmitRespectsPriority(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.Subscribe(EventRewardGranted, &orderedListener{id: "late", priority: 50, log: &log})
	bus.Subscribe(EventRewardGranted, &orderedListener{id: "early", priority: 1, log: &log})
	bus.Subscribe(EventRewardGranted, &orderedListener{id: "mid", priority: 10, log: &log})

	err := bus.Emit(&RewardGranted{Reward: &entities.RewardEvent{ID: "r1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "mid", "late"}, log)
}

func TestEmitOnlyReachesMatchingType(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.Subscribe(EventRewardGranted, &orderedListener{id: "rewards", log: &log})

	err := bus.Emit(&DifficultyAdjusted{Score: 1.0, Multiplier: 1.0, Flow: entities.FlowOptimal})
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestEmitStopsOnListenerError(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.Subscribe(EventEncounterResolved, &orderedListener{id: "first", priority: 1, log: &log})
	bus.Subscribe(EventEncounterResolved, &orderedListener{
		id: "broken", priority: 2, log: &log, failWith: fmt.Errorf("sink unavailable"),
	})
	bus.Subscribe(EventEncounterResolved, &orderedListener{id: "never", priority: 3, log: &log})

	err := bus.Emit(&EncounterResolved{Telemetry: &entities.EncounterTelemetry{EncounterID: "enc_1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"first", "broken"}, log)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.Subscribe(EventRewardGranted, &orderedListener{id: "keep", priority: 1, log: &log})
	bus.Subscribe(EventRewardGranted, &orderedListener{id: "drop", priority: 2, log: &log})
	bus.Unsubscribe(EventRewardGranted, "drop")

	err := bus.Emit(&RewardGranted{Reward: &entities.RewardEvent{ID: "r1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, log)
}

func TestClear(t *testing.T) {
	bus := NewBus()
	var log []string

	bus.Subscribe(EventRewardGranted, &orderedListener{id: "gone", log: &log})
	bus.Clear()

	err := bus.Emit(&RewardGranted{Reward: &entities.RewardEvent{ID: "r1"}})
	require.NoError(t, err)
	assert.Empty(t, log)
}
