package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockElapsedSeconds(t *testing.T) {
	c := NewClock()

	// Not started, no elapsed time.
	c.Update()
	assert.Zero(t, c.Elapsed())
	assert.Zero(t, c.ElapsedSeconds())

	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.Update()

	assert.Greater(t, c.Elapsed(), float64(10*time.Millisecond))
	assert.InDelta(t, c.Elapsed()/float64(time.Second), c.ElapsedSeconds(), 1e-12)
	assert.Less(t, c.ElapsedSeconds(), 5.0)
}
