package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeapLayoutCastleScenario(t *testing.T) {
	layout := HeapLayout{RingDepth: 3, ItemCount: 34}

	assert.Equal(t, uint32(102), layout.PassOffset())
	assert.Equal(t, uint32(78), layout.ObjectIndex(2, 10))
	assert.Equal(t, uint32(105), layout.TotalDescriptors())
}

func TestHeapLayoutRegions(t *testing.T) {
	layout := HeapLayout{RingDepth: 3, ItemCount: 5}

	// Object views tile [0, RingDepth*ItemCount) without collision.
	seen := map[uint32]bool{}
	for slot := uint32(0); slot < layout.RingDepth; slot++ {
		for item := uint32(0); item < layout.ItemCount; item++ {
			idx := layout.ObjectIndex(slot, item)
			assert.Less(t, idx, layout.PassOffset())
			assert.False(t, seen[idx], "index %d reused", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, int(layout.PassOffset()))

	// Pass views follow, one per ring slot.
	for slot := uint32(0); slot < layout.RingDepth; slot++ {
		idx := layout.PassIndex(slot)
		assert.GreaterOrEqual(t, idx, layout.PassOffset())
		assert.Less(t, idx, layout.TotalDescriptors())
	}
}
