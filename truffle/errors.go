package truffle

import (
	"errors"
	"fmt"

	"github.com/jshufro/typegen-truffle/evm"
)

// Position is the side of a signature a type is rendered for.
type Position string

const (
	PositionInput  Position = "input"
	PositionOutput Position = "output"
)

// ErrUnrenderableType matches every *UnrenderableTypeError with errors.Is.
var ErrUnrenderableType = errors.New("unrenderable type")

// UnrenderableTypeError is returned when a type cannot be expressed in the
// requested position, either because its tag is unknown or because it is
// void in input position.
type UnrenderableTypeError struct {
	Tag      evm.Tag
	Position Position
}

func (e *UnrenderableTypeError) Error() string {
	return fmt.Sprintf("cannot render type '%s' in %s position", e.Tag, e.Position)
}

func (e *UnrenderableTypeError) Is(target error) bool {
	return target == ErrUnrenderableType
}

func unrenderable(t evm.Type, pos Position) error {
	tag := evm.Tag("<nil>")
	if t != nil {
		tag = t.Tag()
	}
	return &UnrenderableTypeError{Tag: tag, Position: pos}
}
