package generrors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := Validationf("#/paths/~1pets/get", map[string]any{"type": "object", "bogus": 1}, "no matcher accepted the node")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrReference))
	assert.Contains(t, err.Error(), "#/paths/~1pets/get")
	assert.Contains(t, err.Error(), `"bogus":1`)
}

func TestValidationErrorTruncatesNode(t *testing.T) {
	err := &ValidationError{Message: "too big", Node: strings.Repeat("x", 2*maxNodeLen)}
	assert.True(t, strings.HasSuffix(err.Error(), "...)"))
}

func TestReferenceError(t *testing.T) {
	broken := &ReferenceError{Ref: "#/components/schemas/Pet", Segment: "Pet", Message: "no value"}
	assert.True(t, errors.Is(broken, ErrReference))
	assert.True(t, errors.Is(broken, ErrValidation))
	assert.False(t, errors.Is(broken, ErrCircularReference))
	assert.Equal(t, `reference error #/components/schemas/Pet, segment "Pet": no value`, broken.Error())

	circular := &ReferenceError{Ref: "#/components/schemas/Node", IsCircular: true}
	assert.True(t, errors.Is(circular, ErrCircularReference))
	assert.Equal(t, "circular reference #/components/schemas/Node", circular.Error())
}

func TestWrappedErrorsKeepClass(t *testing.T) {
	ioErr := &IOError{Op: "read", Target: "/tmp/missing.json", Cause: os.ErrNotExist}
	wrapped := fmt.Errorf("spec wallet: %w", ioErr)

	assert.True(t, errors.Is(wrapped, ErrIO))
	assert.True(t, errors.Is(wrapped, os.ErrNotExist))

	var target *IOError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "/tmp/missing.json", target.Target)

	formatErr := &FormatError{Source: "spec.txt", Cause: errors.New("bad")}
	assert.True(t, errors.Is(fmt.Errorf("x: %w", formatErr), ErrFormat))
	assert.Contains(t, formatErr.Error(), "neither JSON nor YAML")
}
