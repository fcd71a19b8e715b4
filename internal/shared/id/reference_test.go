package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderReference_Deterministic(t *testing.T) {
	a := OrderReference("3f2c9b1e-7d14-4a52-9a0e-8c1d2e3f4a5b")
	b := OrderReference("3f2c9b1e-7d14-4a52-9a0e-8c1d2e3f4a5b")
	assert.Equal(t, a, b)
	assert.Len(t, a, 8)
}

func TestOrderReference_DistinctInputs(t *testing.T) {
	a := OrderReference("order-one")
	b := OrderReference("order-two")
	assert.NotEqual(t, a, b)
}

func TestOrderReference_EmptyInput(t *testing.T) {
	assert.Equal(t, "00000000", OrderReference(""))
}
