package testbed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rampart/engine/config"
	"github.com/spaghettifunk/rampart/engine/core"
)

func TestFrameStateWireframeFollowsHeldKey(t *testing.T) {
	require.NoError(t, core.InputInitialize())

	game, err := NewCastleGame(config.Default())
	require.NoError(t, err)

	assert.False(t, game.FrameState().Wireframe)

	require.NoError(t, core.InputProcessKey(core.KEY_1, true))
	assert.True(t, game.FrameState().Wireframe)

	// Holding across a frame boundary keeps wireframe on.
	require.NoError(t, core.InputUpdate(0))
	assert.True(t, game.FrameState().Wireframe)

	require.NoError(t, core.InputProcessKey(core.KEY_1, false))
	assert.False(t, game.FrameState().Wireframe)
}
