package entities

// ClassTemplate is the immutable definition a character is created from
type ClassTemplate struct {
	ID           string
	Name         string
	Scores       AbilityScores
	Abilities    []string
	StartingGold int
}

// HP derives maximum hit points from constitution
func (t *ClassTemplate) HP() int {
	return (t.Scores.Constitution - 4) * 6
}

// PowerScore is the scalar used to compare class strength across the
// catalog. It is monotonic in every attribute and in hit points.
func (t *ClassTemplate) PowerScore() float64 {
	return float64(t.Scores.Sum()) + float64(t.HP())/4
}
