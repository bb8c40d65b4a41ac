package spacedrep

import "time"

// Answer-speed thresholds for the quality bridge.
const (
	fastAnswer = 20 * time.Second
	slowAnswer = 60 * time.Second
)

// Quality maps raw answer outcomes onto the SM-2 quality scale. A wrong
// answer always grades 2; correct answers grade by speed. Normal
// operation never produces 0, 1, or anything above 5.
func Quality(correct bool, duration time.Duration) int {
	if !correct {
		return 2
	}
	switch {
	case duration <= fastAnswer:
		return 5
	case duration <= slowAnswer:
		return 4
	default:
		return 3
	}
}
