package timeutil

import (
	"testing"
	"time"
)

func TestRealClock(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	if now.Before(before) {
		t.Errorf("Now() = %v, before %v", now, before)
	}
	if clock.Since(before) < 0 {
		t.Error("Since returned a negative duration")
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if !clock.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", clock.Now(), start)
	}

	clock.Advance(time.Hour)
	if want := start.Add(time.Hour); !clock.Now().Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", clock.Now(), want)
	}

	if got := clock.Since(start); got != time.Hour {
		t.Errorf("Since(start) = %v, want %v", got, time.Hour)
	}

	reset := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(reset)
	if !clock.Now().Equal(reset) {
		t.Errorf("after Set, Now() = %v, want %v", clock.Now(), reset)
	}
}

func TestMockClockSleep(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Sleep(500 * time.Millisecond)
	clock.Sleep(250 * time.Millisecond)

	sleeps := clock.Sleeps()
	if len(sleeps) != 2 {
		t.Fatalf("got %d sleeps, want 2", len(sleeps))
	}
	if sleeps[0] != 500*time.Millisecond || sleeps[1] != 250*time.Millisecond {
		t.Errorf("sleeps = %v", sleeps)
	}

	if want := start.Add(750 * time.Millisecond); !clock.Now().Equal(want) {
		t.Errorf("Sleep did not advance the clock: Now() = %v, want %v", clock.Now(), want)
	}
}
