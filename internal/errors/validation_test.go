package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/wrenfall/rpg-core/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldError("class_id", "is invalid")
	ve.AddFieldErrorf("encounters", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "class_id: is invalid")
	s.Assert().Contains(ve.Error(), "encounters: must be at least 1")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("vr_target", "must be between %d and %d", 5, 10).
		RequiredField("classCatalog").
		InvalidField("log_level", "not a recognized level")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMaxLength() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("name", "this is a very long character name that keeps going", 50, vb)
	errors.ValidateMaxLength("class_id", "mage", 32, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["name"][0], "must be no more than 50 characters")
	s.Assert().NotContains(validationErrors, "class_id")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("vr_target", 12, 5, 10, vb)
	errors.ValidateRange("strength", 15, 5, 18, vb)
	errors.ValidateRange("encounters", 0, 1, 1000, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["vr_target"][0], "must be between 5 and 10")
	s.Assert().Contains(validationErrors["encounters"][0], "must be between 1 and 1000")
	s.Assert().NotContains(validationErrors, "strength")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowedLevels := []string{"debug", "info", "warn", "error"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("log_level", "verbose", allowedLevels, vb)
	errors.ValidateEnum("fallback_level", "info", allowedLevels, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["log_level"][0], "must be one of: debug, info, warn, error")
	s.Assert().NotContains(validationErrors, "fallback_level")
}

func (s *ValidationTestSuite) TestComplexValidation() {
	// Simulate validating a simulation run request
	type SimulationInput struct {
		Name       string
		VRTarget   int
		Encounters int
		Scores     map[string]int
	}

	input := SimulationInput{
		Name:       "",
		VRTarget:   12,
		Encounters: 30,
		Scores: map[string]int{
			"strength":  22,
			"dexterity": 10,
		},
	}

	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRange("vr_target", input.VRTarget, 5, 10, vb)
	errors.ValidateRange("encounters", input.Encounters, 1, 1000, vb)
	for score, value := range input.Scores {
		errors.ValidateRange(score, value, 4, 18, vb)
	}

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors, "name")
	s.Assert().Contains(validationErrors, "vr_target")
	s.Assert().Contains(validationErrors, "strength")
	s.Assert().NotContains(validationErrors, "encounters")
}
