package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(base, CodeInternal, "store failed")
	outer := fmt.Errorf("verify: %w", New(CodeValidation, "invoice_id is required"))

	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.False(t, HasCode(wrapped, CodeValidation))
	assert.True(t, HasCode(outer, CodeValidation))
	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, HasCode(base, CodeInternal))
	assert.Nil(t, Wrap(nil, CodeInternal, "nothing"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "missing")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
