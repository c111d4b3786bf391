package entities

import "time"

// EncounterTelemetry is the per-encounter record consumed by the
// difficulty controller. It is immutable once recorded and consumed
// exactly once.
type EncounterTelemetry struct {
	EncounterID   string
	Outcome       Outcome
	Turns         int
	ResourcesUsed int
	DamageDealt   int
	DamageTaken   int
	Duration      time.Duration
	RecordedAt    time.Time
}
