// Package character implements the character factory: validated,
// deterministic character creation from the class catalog.
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/wrenfall/rpg-core/internal/orchestrators/character Service

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/wrenfall/rpg-core/internal/catalog"
	"github.com/wrenfall/rpg-core/internal/entities"
	"github.com/wrenfall/rpg-core/internal/errors"
	"github.com/wrenfall/rpg-core/internal/pkg/clock"
	"github.com/wrenfall/rpg-core/internal/pkg/idgen"
)

// MaxNameLength is the longest accepted character name
const MaxNameLength = 50

// Validation failure reasons carried in error metadata
const (
	ReasonEmptyName    = "empty_name"
	ReasonNameTooLong  = "name_too_long"
	ReasonUnknownClass = "unknown_class"
)

// Service defines the interface for character creation operations
type Service interface {
	// CreateCharacter validates the input and builds a character from
	// its class template. Creation is deterministic: the same name and
	// class always produce identical stats.
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// ListClasses returns the full class roster
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)

	// GetClass returns one class template by id
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)
}

// Config holds the dependencies for the character factory
type Config struct {
	Classes     *catalog.ClassCatalog
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Classes == nil {
		vb.RequiredField("Classes")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	classes *catalog.ClassCatalog
	idGen   idgen.Generator
	clk     clock.Clock
}

// NewOrchestrator creates a new character factory with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		classes: cfg.Classes,
		idGen:   cfg.IDGenerator,
		clk:     cfg.Clock,
	}, nil
}

var _ Service = (*orchestrator)(nil)

// CreateCharacter implements Service.CreateCharacter. Validation is
// fail-fast in a fixed order: empty name, then name length, then class
// lookup. No state mutates on failure.
func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.Name == "" {
		return nil, errors.InvalidArgument("character name cannot be empty").
			WithMeta("reason", ReasonEmptyName)
	}
	if utf8.RuneCountInString(input.Name) > MaxNameLength {
		return nil, errors.InvalidArgumentf("character name cannot exceed %d characters", MaxNameLength).
			WithMeta("reason", ReasonNameTooLong)
	}

	template, ok := o.classes.ClassByID(input.ClassID)
	if !ok {
		return nil, errors.NotFoundf("unknown class %q", input.ClassID).
			WithMeta("reason", ReasonUnknownClass)
	}

	hp := template.HP()
	char := &entities.Character{
		ID:        o.idGen.Generate(),
		Name:      input.Name,
		ClassID:   template.ID,
		Level:     1,
		Scores:    template.Scores,
		MaxHP:     hp,
		CurrentHP: hp,
		Gold:      template.StartingGold,
		Abilities: append([]string(nil), template.Abilities...),
		CreatedAt: o.clk.Now().Unix(),
	}

	slog.Info("character created",
		"character_id", char.ID,
		"name", char.Name,
		"class", char.ClassID,
	)

	return &CreateCharacterOutput{Character: char}, nil
}

// ListClasses implements Service.ListClasses
func (o *orchestrator) ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error) {
	return &ListClassesOutput{Classes: o.classes.Classes()}, nil
}

// GetClass implements Service.GetClass
func (o *orchestrator) GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	template, ok := o.classes.ClassByID(input.ClassID)
	if !ok {
		return nil, errors.NotFoundf("unknown class %q", input.ClassID).
			WithMeta("reason", ReasonUnknownClass)
	}
	return &GetClassOutput{Class: template}, nil
}
