// Package spacedrep implements SM-2 review scheduling over
// (syndrome, question-type) pairs.
package spacedrep

import (
	"math"
	"time"
)

const (
	// InitialEasiness is the SM-2 starting easiness factor.
	InitialEasiness = 2.5
	// MinEasiness is the SM-2 floor; easiness never drops below it.
	MinEasiness = 1.3
)

// State is one pair's SM-2 record. Values are never mutated in place;
// NextState returns a fresh record.
type State struct {
	Easiness     float64
	IntervalDays int
	Repetition   int
	NextReview   time.Time
}

// NewState returns the first-exposure state: due again tomorrow.
func NewState(base time.Time) State {
	return State{
		Easiness:     InitialEasiness,
		IntervalDays: 1,
		Repetition:   0,
		NextReview:   base.AddDate(0, 0, 1),
	}
}

// NextState applies one review outcome. Quality below 3 is a failure:
// repetition and interval reset while easiness still takes the penalty.
// The third and later success intervals use the pre-update easiness and
// interval, per the original SM-2 formulation.
func NextState(prev State, quality int, base time.Time) State {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	next := State{Easiness: prev.Easiness}

	if quality < 3 {
		next.Repetition = 0
		next.IntervalDays = 1
	} else {
		next.Repetition = prev.Repetition + 1
		switch next.Repetition {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(prev.IntervalDays) * prev.Easiness))
			if next.IntervalDays < 1 {
				next.IntervalDays = 1
			}
		}
	}

	q := float64(quality)
	ef := prev.Easiness + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEasiness {
		ef = MinEasiness
	}
	next.Easiness = math.Round(ef*100) / 100

	next.NextReview = base.AddDate(0, 0, next.IntervalDays)
	return next
}
