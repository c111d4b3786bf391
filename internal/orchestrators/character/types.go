package character

import "github.com/wrenfall/rpg-core/internal/entities"

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	Name    string
	ClassID string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// ListClassesInput defines the request for listing class templates
type ListClassesInput struct{}

// ListClassesOutput returns every class template in presentation order
type ListClassesOutput struct {
	Classes []entities.ClassTemplate
}

// GetClassInput defines the request for one class template
type GetClassInput struct {
	ClassID string
}

// GetClassOutput returns the requested class template
type GetClassOutput struct {
	Class *entities.ClassTemplate
}
