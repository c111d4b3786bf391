package entities

// BehaviorTag drives enemy action selection in combat
type BehaviorTag string

// Behavior tags
const (
	BehaviorAggressive BehaviorTag = "aggressive"
	BehaviorDefensive  BehaviorTag = "defensive"
	BehaviorCaster     BehaviorTag = "caster"
	BehaviorSupportive BehaviorTag = "supportive"
	BehaviorBoss       BehaviorTag = "boss"
)

// DamageKind classifies damage for weakness resolution
type DamageKind string

// Damage kinds
const (
	DamagePhysical DamageKind = "physical"
	DamageMagical  DamageKind = "magical"
)

// BossPhase is one entry in a boss's scripted phase table, ordered by
// descending HP threshold. A phase activates when HP falls to or below
// its threshold and stays active until a deeper one triggers.
type BossPhase struct {
	HPBelowPct  float64
	Behavior    BehaviorTag
	DamageBonus int
}

// EnemyTemplate is an immutable catalog entry
type EnemyTemplate struct {
	ID         string
	Name       string
	Tier       int
	Boss       bool
	Behavior   BehaviorTag
	MaxHP      int
	Attack     int
	Defense    int
	Dexterity  int
	Magic      int
	Weaknesses []DamageKind
	XP         int
	Phases     []BossPhase
}

// Spawn creates a combat-ready instance with the difficulty multiplier
// baked in. The instance never rescales after this, even if difficulty
// changes mid-encounter.
func (t *EnemyTemplate) Spawn(scale float64) *EnemyInstance {
	hp := scaleStat(t.MaxHP, scale)
	return &EnemyInstance{
		TemplateID:  t.ID,
		Name:        t.Name,
		Boss:        t.Boss,
		Behavior:    t.Behavior,
		MaxHP:       hp,
		CurrentHP:   hp,
		Attack:      scaleStat(t.Attack, scale),
		Defense:     scaleStat(t.Defense, scale),
		Dexterity:   t.Dexterity,
		Magic:       scaleStat(t.Magic, scale),
		Weaknesses:  append([]DamageKind(nil), t.Weaknesses...),
		XP:          scaleStat(t.XP, scale),
		ScaleFactor: scale,
		Phases:      append([]BossPhase(nil), t.Phases...),
	}
}

func scaleStat(base int, scale float64) int {
	if base == 0 {
		return 0
	}
	v := int(float64(base) * scale)
	if v < 1 {
		v = 1
	}
	return v
}

// EnemyInstance is a spawned enemy participating in one encounter
type EnemyInstance struct {
	TemplateID  string
	Name        string
	Boss        bool
	Behavior    BehaviorTag
	MaxHP       int
	CurrentHP   int
	Attack      int
	Defense     int
	Dexterity   int
	Magic       int
	Weaknesses  []DamageKind
	XP          int
	ScaleFactor float64
	Phases      []BossPhase
	PhaseIndex  int
}

// IsAlive reports whether the enemy has hit points remaining
func (e *EnemyInstance) IsAlive() bool {
	return e.CurrentHP > 0
}

// ApplyDamage reduces current HP, clamping at zero
func (e *EnemyInstance) ApplyDamage(amount int) {
	e.CurrentHP -= amount
	if e.CurrentHP < 0 {
		e.CurrentHP = 0
	}
}

// IsWeakTo reports whether the enemy takes bonus damage from the given kind
func (e *EnemyInstance) IsWeakTo(kind DamageKind) bool {
	for _, w := range e.Weaknesses {
		if w == kind {
			return true
		}
	}
	return false
}

// ActivePhase returns the deepest triggered boss phase, or nil when no
// phase has triggered yet. PhaseIndex counts activated phases and never
// decreases, so a healed boss stays in its current phase.
func (e *EnemyInstance) ActivePhase() *BossPhase {
	if len(e.Phases) == 0 {
		return nil
	}

	hpPct := float64(e.CurrentHP) / float64(e.MaxHP)
	for e.PhaseIndex < len(e.Phases) && hpPct <= e.Phases[e.PhaseIndex].HPBelowPct {
		e.PhaseIndex++
	}
	if e.PhaseIndex == 0 {
		return nil
	}
	return &e.Phases[e.PhaseIndex-1]
}
