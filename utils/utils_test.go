package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "never fires") })
	assert.PanicsWithValue(t, "invariant violated - user must exist", func() {
		AssertInvariant(false, "user must exist")
	})
}
