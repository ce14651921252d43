package autosave

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerCoalescesBurst(t *testing.T) {
	s := NewScheduler(30 * time.Millisecond)
	defer s.Close()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		s.Schedule("k", func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load(), "a burst must produce exactly one firing")
}

func TestSchedulerSeparateWindowsFireSeparately(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Close()

	var fired atomic.Int32
	s.Schedule("k", func() { fired.Add(1) })
	time.Sleep(60 * time.Millisecond)
	s.Schedule("k", func() { fired.Add(1) })
	time.Sleep(60 * time.Millisecond)

	require.Equal(t, int32(2), fired.Load())
}

func TestSchedulerKeysAreIndependent(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Close()

	var a, b atomic.Int32
	s.Schedule("a", func() { a.Add(1) })
	s.Schedule("b", func() { b.Add(1) })

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, int32(1), a.Load())
	require.Equal(t, int32(1), b.Load())
}

func TestSchedulerFlushRunsPendingImmediately(t *testing.T) {
	s := NewScheduler(time.Hour)
	defer s.Close()

	var fired atomic.Int32
	s.Schedule("k", func() { fired.Add(1) })
	s.Flush("k")
	require.Equal(t, int32(1), fired.Load())

	// Nothing pending any more.
	s.Flush("k")
	require.Equal(t, int32(1), fired.Load())
}

func TestSchedulerCloseDrainsPending(t *testing.T) {
	s := NewScheduler(time.Hour)

	var fired atomic.Int32
	s.Schedule("a", func() { fired.Add(1) })
	s.Schedule("b", func() { fired.Add(1) })
	s.Close()

	require.Equal(t, int32(2), fired.Load())
}

func TestSchedulerLastActionWins(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Close()

	var got atomic.Value
	s.Schedule("k", func() { got.Store("first") })
	s.Schedule("k", func() { got.Store("second") })

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, "second", got.Load())
}
