package core

import (
	"errors"
)

// ErrSwapchainBooting marks a frame that was skipped because the swapchain is
// mid-recreate; the draw loop treats it as a no-op, not a failure.
var ErrSwapchainBooting = errors.New("swapchain resized or recreated, booting")
