package idletimer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A long interval keeps the background goroutine from ticking during tests;
// countdown behavior is driven through tick() directly.
const testInterval = time.Hour

func TestArm_StartsCountdownOnce(t *testing.T) {
	timer := New(20, testInterval, func() {}, nil)
	defer timer.Stop()

	assert.False(t, timer.Armed())

	timer.Arm()
	assert.True(t, timer.Armed())
	assert.Equal(t, 20, timer.Remaining())

	// Re-arming while armed must not restart the countdown.
	require.False(t, timer.tick())
	assert.Equal(t, 19, timer.Remaining())
	timer.Arm()
	assert.Equal(t, 19, timer.Remaining())
}

func TestTick_DecrementsByOne(t *testing.T) {
	timer := New(3, testInterval, func() {}, nil)
	defer timer.Stop()
	timer.Arm()

	assert.False(t, timer.tick())
	assert.Equal(t, 2, timer.Remaining())
	assert.False(t, timer.tick())
	assert.Equal(t, 1, timer.Remaining())
}

func TestTick_ExpiresAtZero(t *testing.T) {
	timer := New(2, testInterval, func() {}, nil)
	defer timer.Stop()
	timer.Arm()

	assert.False(t, timer.tick())
	assert.True(t, timer.tick())

	// Counter reinitializes on expiry; teardown is the owner's job.
	assert.Equal(t, 2, timer.Remaining())
	assert.True(t, timer.Armed())
}

func TestTouch_ResetsRemaining(t *testing.T) {
	timer := New(5, testInterval, func() {}, nil)
	defer timer.Stop()
	timer.Arm()

	timer.tick()
	timer.tick()
	require.Equal(t, 3, timer.Remaining())

	timer.Touch()
	assert.Equal(t, 5, timer.Remaining())
}

func TestTouch_NoOpWhenDisarmed(t *testing.T) {
	timer := New(5, testInterval, func() {}, nil)

	timer.Touch()
	assert.False(t, timer.Armed())
	assert.Zero(t, timer.Remaining())
}

func TestTick_NoOpWhenDisarmed(t *testing.T) {
	timer := New(5, testInterval, func() {}, nil)

	assert.False(t, timer.tick())
	assert.Zero(t, timer.Remaining())
}

func TestStop_Disarms(t *testing.T) {
	timer := New(5, testInterval, func() {}, nil)
	timer.Arm()
	require.True(t, timer.Armed())

	timer.Stop()
	assert.False(t, timer.Armed())

	// Stopping again is safe.
	timer.Stop()
}

func TestRun_FiresOnExpiry(t *testing.T) {
	var fired atomic.Int32
	timer := New(1, 5*time.Millisecond, func() { fired.Add(1) }, nil)
	timer.Arm()

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, time.Second, time.Millisecond)

	timer.Stop()
}
