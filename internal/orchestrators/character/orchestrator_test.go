package character

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
)

type FactorySuite struct {
	suite.Suite

	ctx     context.Context
	classes *catalog.ClassCatalog
	clk     *clock.Fake
	svc     Service
}

func (s *FactorySuite) SetupTest() {
	s.ctx = context.Background()
	s.classes = catalog.NewClassCatalog()
	s.clk = clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	svc, err := NewOrchestrator(&Config{
		Classes:     s.classes,
		IDGenerator: idgen.NewSequential("char"),
		Clock:       s.clk,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *FactorySuite) TestCreateWarrior() {
	out, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Brakka",
		ClassID: "warrior",
	})
	s.Require().NoError(err)

	ch := out.Character
	s.Equal("Brakka", ch.Name)
	s.Equal("warrior", ch.ClassID)
	s.Equal(1, ch.Level)
	s.Equal(15, ch.Scores.Strength)
	s.Equal(10, ch.Scores.Dexterity)
	s.Equal(8, ch.Scores.Intelligence)
	s.Equal(10, ch.Scores.Wisdom)
	s.Equal(8, ch.Scores.Charisma)
	s.Equal(14, ch.Scores.Constitution)
	s.Equal(60, ch.MaxHP)
	s.Equal(60, ch.CurrentHP)
	s.Equal(100, ch.Gold)
	s.Equal([]string{"attack", "defend", "power_strike"}, ch.Abilities)
	s.Empty(ch.InventoryRef)
	s.Equal(s.clk.Now().Unix(), ch.CreatedAt)
}

func (s *FactorySuite) TestCreatedAtTracksClock() {
	first, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Early",
		ClassID: "warrior",
	})
	s.Require().NoError(err)

	s.clk.Advance(90 * time.Minute)

	second, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Late",
		ClassID: "warrior",
	})
	s.Require().NoError(err)

	s.Equal(int64(90*60), second.Character.CreatedAt-first.Character.CreatedAt)
}

func (s *FactorySuite) TestCreateMage() {
	out, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Vel",
		ClassID: "mage",
	})
	s.Require().NoError(err)

	ch := out.Character
	s.Equal(8, ch.Scores.Strength)
	s.Equal(12, ch.Scores.Dexterity)
	s.Equal(16, ch.Scores.Intelligence)
	s.Equal(14, ch.Scores.Wisdom)
	s.Equal(10, ch.Scores.Charisma)
	s.Equal(8, ch.Scores.Constitution)
	s.Equal(24, ch.MaxHP)
	s.Equal([]string{"attack", "defend", "fireball"}, ch.Abilities)
}

// Creation is deterministic: the same name/class pair always yields
// identical stats, for every class in the catalog.
func (s *FactorySuite) TestCreateIsDeterministicAcrossAllClasses() {
	for _, class := range s.classes.Classes() {
		first, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
			Name:    "Echo",
			ClassID: class.ID,
		})
		s.Require().NoError(err, class.ID)

		second, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
			Name:    "Echo",
			ClassID: class.ID,
		})
		s.Require().NoError(err, class.ID)

		s.Equal(first.Character.Scores, second.Character.Scores, class.ID)
		s.Equal(first.Character.MaxHP, second.Character.MaxHP, class.ID)
		s.Equal(first.Character.Gold, second.Character.Gold, class.ID)
		s.Equal(first.Character.Abilities, second.Character.Abilities, class.ID)
		s.Equal(100, first.Character.Gold, class.ID)
		s.GreaterOrEqual(len(first.Character.Abilities), 3, class.ID)
	}
}

// The ability list is a copy, never a shared reference into the catalog.
func (s *FactorySuite) TestAbilitiesAreCopied() {
	out, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Mutator",
		ClassID: "rogue",
	})
	s.Require().NoError(err)

	out.Character.Abilities[0] = "tampered"

	template, ok := s.classes.ClassByID("rogue")
	s.Require().True(ok)
	s.Equal("attack", template.Abilities[0])
}

func (s *FactorySuite) TestEmptyNameRejected() {
	_, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "",
		ClassID: "warrior",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(ReasonEmptyName, errors.GetMeta(err)["reason"])
}

func (s *FactorySuite) TestLongNameRejected() {
	_, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    strings.Repeat("a", 51),
		ClassID: "warrior",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(ReasonNameTooLong, errors.GetMeta(err)["reason"])
}

func (s *FactorySuite) TestFiftyCharNameAccepted() {
	out, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    strings.Repeat("a", 50),
		ClassID: "warrior",
	})
	s.Require().NoError(err)
	s.Len(out.Character.Name, 50)
}

// Name length counts runes, not bytes. Fifty multibyte runes are fine
// even though they exceed fifty bytes.
func (s *FactorySuite) TestMultibyteNameLengthCountsRunes() {
	out, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    strings.Repeat("ß", 50),
		ClassID: "warrior",
	})
	s.Require().NoError(err)
	s.Equal(strings.Repeat("ß", 50), out.Character.Name)

	_, err = s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    strings.Repeat("ß", 51),
		ClassID: "warrior",
	})
	s.Require().Error(err)
	s.Equal(ReasonNameTooLong, errors.GetMeta(err)["reason"])
}

func (s *FactorySuite) TestUnknownClassRejected() {
	_, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "Nobody",
		ClassID: "ninja_pirate",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal(ReasonUnknownClass, errors.GetMeta(err)["reason"])
}

// Validation is fail fast: an empty name wins over an unknown class.
func (s *FactorySuite) TestValidationOrder() {
	_, err := s.svc.CreateCharacter(s.ctx, &CreateCharacterInput{
		Name:    "",
		ClassID: "ninja_pirate",
	})
	s.Require().Error(err)
	s.Equal(ReasonEmptyName, errors.GetMeta(err)["reason"])
}

func (s *FactorySuite) TestListClasses() {
	out, err := s.svc.ListClasses(s.ctx, &ListClassesInput{})
	s.Require().NoError(err)
	s.Len(out.Classes, 23)
	s.Equal("warrior", out.Classes[0].ID)
}

func (s *FactorySuite) TestGetClass() {
	out, err := s.svc.GetClass(s.ctx, &GetClassInput{ClassID: "bard"})
	s.Require().NoError(err)
	s.Equal("Bard", out.Class.Name)

	_, err = s.svc.GetClass(s.ctx, &GetClassInput{ClassID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *FactorySuite) TestConfigValidation() {
	_, err := NewOrchestrator(&Config{})
	s.Require().Error(err)
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}
