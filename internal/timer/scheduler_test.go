package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartFiresOnExpire(t *testing.T) {
	s := New()
	var fired int32
	s.Start("autoFlip", 10*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, time.Millisecond)
	require.False(t, s.Active("autoFlip"))
}

func TestCancelPreventsExpire(t *testing.T) {
	s := New()
	var fired int32
	s.Start("claimWindow", 20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	s.Cancel("claimWindow")
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestRestartSupersedesPriorTimer(t *testing.T) {
	s := New()
	var fires int32
	s.Start("pendingFlipReveal", 10*time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	s.Start("pendingFlipReveal", 10*time.Millisecond, func() {
		atomic.AddInt32(&fires, 1)
	})
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&fires))
}

func TestCancelAllStopsEverySlot(t *testing.T) {
	s := New()
	var fired int32
	s.Start("autoFlip", 10*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	s.Start("claimWindow", 10*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	s.Start("endCountdown", 10*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	s.CancelAll()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), atomic.LoadInt32(&fired))
	require.False(t, s.Active("autoFlip"))
	require.False(t, s.Active("claimWindow"))
	require.False(t, s.Active("endCountdown"))
}
