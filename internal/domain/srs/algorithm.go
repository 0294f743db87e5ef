package srs

import (
	"math"
	"time"

	"github.com/wordwell/wordwell-api/internal/domain"
)

// minEaseFactor is the floor for the ease factor. Without it, persistently
// hard cards would collapse into runaway-short intervals.
const minEaseFactor = 1.3

// passThreshold is the lowest quality rating counted as a successful recall.
const passThreshold = 3

// calculateRepetitions determines the new consecutive-success count.
//
// A failed review (quality < 3) resets the count to zero; a successful one
// increments it. The count feeds the interval schedule: the first two
// successes use fixed intervals, later ones grow multiplicatively.
func calculateRepetitions(currentRepetitions, quality int) int {
	if quality < passThreshold {
		return 0
	}
	return currentRepetitions + 1
}

// calculateInterval determines the new review interval in days.
//
// Parameters:
//   - currentInterval: the pre-review interval in days
//   - easeFactor: the pre-review ease factor
//   - newRepetitions: the repetition count already updated for this review
//   - quality: the review quality rating
//
// A failure always forces the interval back to 1 day regardless of how long
// the card had been scheduled out - a hard reset, not a gradual decay. The
// first success after a reset waits 1 day, the second 6 days, and from the
// third onward the interval grows by the pre-review interval times the
// pre-review ease factor, rounded to the nearest whole day. There is no
// upper bound; intervals grow without limit under sustained success.
func calculateInterval(currentInterval int, easeFactor float64, newRepetitions, quality int) int {
	if quality < passThreshold {
		return 1
	}
	switch newRepetitions {
	case 1:
		return 1
	case 2:
		return 6
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// calculateEaseFactor determines the new ease factor.
//
// The adjustment follows the SM-2 formula
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// so a perfect recall (q=5) raises the ease factor by 0.1 and lower
// qualities pull it down progressively harder. The result is rounded to two
// decimal places before the 1.3 floor is applied, so a computed value of
// exactly 1.3 is retained rather than bumped.
func calculateEaseFactor(currentEaseFactor float64, quality int) float64 {
	q := float64(quality)
	adjustment := 0.1 - (5-q)*(0.08+(5-q)*0.02)

	newEaseFactor := math.Round((currentEaseFactor+adjustment)*100) / 100
	if newEaseFactor < minEaseFactor {
		newEaseFactor = minEaseFactor
	}
	return newEaseFactor
}

// nextSchedule computes the full post-review scheduling state.
//
// The steps run in a fixed order - repetitions, interval, ease factor, next
// review date - because the interval calculation must see the updated
// repetition count but the *pre-review* interval and ease factor. The next
// review date is now plus the new interval in whole calendar days; due-ness
// is later decided by a plain timestamp comparison against it.
//
// This is a pure function: the input schedule is not modified and the only
// non-deterministic input is the caller-supplied now.
func nextSchedule(current domain.CardSchedule, quality int, now time.Time) domain.CardSchedule {
	newRepetitions := calculateRepetitions(current.Repetitions, quality)
	newInterval := calculateInterval(current.Interval, current.EaseFactor, newRepetitions, quality)
	newEaseFactor := calculateEaseFactor(current.EaseFactor, quality)

	return domain.CardSchedule{
		EaseFactor:   newEaseFactor,
		Interval:     newInterval,
		Repetitions:  newRepetitions,
		NextReviewAt: now.AddDate(0, 0, newInterval),
	}
}
