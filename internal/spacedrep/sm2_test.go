package spacedrep

import (
	"testing"
	"time"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	st := NewState(base)
	if st.Easiness != 2.5 || st.IntervalDays != 1 || st.Repetition != 0 {
		t.Errorf("initial state = %+v", st)
	}
	if want := base.AddDate(0, 0, 1); !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestNextStateSuccessSequence(t *testing.T) {
	st := NewState(base)

	st = NextState(st, 5, base)
	if st.Repetition != 1 || st.IntervalDays != 1 {
		t.Fatalf("after first success: %+v", st)
	}
	if st.Easiness != 2.6 {
		t.Fatalf("easiness after q=5: %v, want 2.6", st.Easiness)
	}

	st = NextState(st, 5, base)
	if st.Repetition != 2 || st.IntervalDays != 6 {
		t.Fatalf("after second success: %+v", st)
	}
	if st.Easiness != 2.7 {
		t.Fatalf("easiness after second q=5: %v, want 2.7", st.Easiness)
	}

	// Third success: interval uses the PRE-update easiness and interval,
	// round(6 * 2.7) = 16.
	st = NextState(st, 4, base)
	if st.Repetition != 3 || st.IntervalDays != 16 {
		t.Fatalf("after third success: %+v", st)
	}
	if st.Easiness != 2.7 {
		t.Fatalf("easiness after q=4: %v, want unchanged 2.7", st.Easiness)
	}
	if want := base.AddDate(0, 0, 16); !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestNextStateFailureResets(t *testing.T) {
	st := State{Easiness: 2.7, IntervalDays: 16, Repetition: 3, NextReview: base}

	st = NextState(st, 2, base)
	if st.Repetition != 0 || st.IntervalDays != 1 {
		t.Errorf("failure did not reset: %+v", st)
	}
	// 2.7 + (0.1 - 3*(0.08 + 3*0.02)) = 2.38
	if st.Easiness != 2.38 {
		t.Errorf("easiness after failure: %v, want 2.38", st.Easiness)
	}
	if want := base.AddDate(0, 0, 1); !st.NextReview.Equal(want) {
		t.Errorf("NextReview = %v, want %v", st.NextReview, want)
	}
}

func TestNextStateEasinessFloor(t *testing.T) {
	st := State{Easiness: 1.3, IntervalDays: 1, Repetition: 0, NextReview: base}
	for i := 0; i < 5; i++ {
		st = NextState(st, 0, base)
		if st.Easiness != 1.3 {
			t.Fatalf("iteration %d: easiness %v dropped below floor", i, st.Easiness)
		}
	}
}

func TestNextStateClampsQuality(t *testing.T) {
	st := NewState(base)

	clampedLow := NextState(st, -3, base)
	atZero := NextState(st, 0, base)
	if clampedLow != atZero {
		t.Errorf("q=-3 gave %+v, q=0 gave %+v", clampedLow, atZero)
	}

	clampedHigh := NextState(st, 9, base)
	atFive := NextState(st, 5, base)
	if clampedHigh != atFive {
		t.Errorf("q=9 gave %+v, q=5 gave %+v", clampedHigh, atFive)
	}
}

func TestNextStateDoesNotMutatePrevious(t *testing.T) {
	prev := State{Easiness: 2.5, IntervalDays: 6, Repetition: 2, NextReview: base}
	snapshot := prev
	NextState(prev, 5, base)
	if prev != snapshot {
		t.Errorf("previous state mutated: %+v", prev)
	}
}

func TestNextStateMinimumInterval(t *testing.T) {
	// Tiny interval with a floored easiness still never goes below 1 day.
	st := State{Easiness: 1.3, IntervalDays: 0, Repetition: 2, NextReview: base}
	st = NextState(st, 3, base)
	if st.IntervalDays < 1 {
		t.Errorf("interval %d below minimum", st.IntervalDays)
	}
}

func TestQualityBridge(t *testing.T) {
	cases := []struct {
		correct  bool
		duration time.Duration
		want     int
	}{
		{false, 5 * time.Second, 2},
		{false, 90 * time.Second, 2},
		{true, 10 * time.Second, 5},
		{true, 20 * time.Second, 5},
		{true, 21 * time.Second, 4},
		{true, 60 * time.Second, 4},
		{true, 61 * time.Second, 3},
		{true, 10 * time.Minute, 3},
	}
	for _, tc := range cases {
		if got := Quality(tc.correct, tc.duration); got != tc.want {
			t.Errorf("Quality(%v, %v) = %d, want %d", tc.correct, tc.duration, got, tc.want)
		}
	}
}
