package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitySet(t *testing.T) {
	// 14 buttons and stick clicks plus 4 d-pad directions.
	assert.Len(t, Buttons, 18)
	assert.Len(t, Axes, 4)

	seen := make(map[Button]bool, len(Buttons))
	for _, b := range Buttons {
		assert.False(t, seen[b], "duplicate button %s", b)
		seen[b] = true
	}
}

func TestCapabilityNames(t *testing.T) {
	for _, b := range Buttons {
		assert.NotContains(t, b.String(), "0x", "unnamed button %d", uint16(b))
	}
	for _, a := range Axes {
		assert.NotContains(t, a.String(), "0x", "unnamed axis %d", uint16(a))
	}

	assert.Equal(t, "south", BtnSouth.String())
	assert.Equal(t, "ry", AxisRY.String())
	assert.Equal(t, "button(0x100)", Button(0x100).String())
}
