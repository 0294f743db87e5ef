// Package srs implements the SM-2 spaced-repetition scheduling algorithm.
//
// The scheduler is a pure mapping from (current scheduling state, quality
// rating, now) to the next scheduling state. It holds no identity or
// persistence concerns; callers load a card's schedule, apply a review, and
// persist the returned state themselves.
package srs

import (
	"errors"
	"time"

	"github.com/wordwell/wordwell-api/internal/domain"
)

// Quality rating bounds. The conventional UI ratings are 0 (Again),
// 3 (Hard), 4 (Good) and 5 (Easy); the algorithm itself accepts the full
// closed range [0,5]. Narrowing to the UI set is a policy choice of the
// surrounding layer, not of the scheduler.
const (
	MinQuality = 0
	MaxQuality = 5
)

// ErrInvalidQuality is returned when a quality rating falls outside [0,5].
// No state is changed when it is returned.
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// Service defines the interface for scheduling operations.
type Service interface {
	// CalculateNextReview computes the post-review scheduling state for a
	// card. It is deterministic given the inputs; now is used solely to
	// derive the next review date.
	CalculateNextReview(
		schedule domain.CardSchedule,
		quality int,
		now time.Time,
	) (domain.CardSchedule, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct{}

// NewService creates the standard SM-2 scheduling service.
func NewService() Service {
	return defaultService{}
}

// CalculateNextReview implements Service.
func (defaultService) CalculateNextReview(
	schedule domain.CardSchedule,
	quality int,
	now time.Time,
) (domain.CardSchedule, error) {
	if quality < MinQuality || quality > MaxQuality {
		return schedule, ErrInvalidQuality
	}

	return nextSchedule(schedule, quality, now), nil
}
