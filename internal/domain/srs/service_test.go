package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/wordwell/wordwell-api/internal/domain"
)

func TestCalculateNextReviewRejectsOutOfRangeQuality(t *testing.T) {
	t.Parallel()

	svc := NewService()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	original := domain.CardSchedule{
		EaseFactor:   2.2,
		Interval:     9,
		Repetitions:  3,
		NextReviewAt: now,
	}

	for _, quality := range []int{-1, 6, 100, -42} {
		got, err := svc.CalculateNextReview(original, quality, now)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("quality %d: expected ErrInvalidQuality, got %v", quality, err)
		}
		if got != original {
			t.Errorf("quality %d: schedule changed on invalid input: %+v", quality, got)
		}
	}
}

func TestCalculateNextReviewAcceptsFullRange(t *testing.T) {
	t.Parallel()

	svc := NewService()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	schedule := domain.NewCardSchedule(now)

	// The scheduler accepts the full [0,5] range even though the UI only
	// ever sends 0, 3, 4 and 5.
	for quality := 0; quality <= 5; quality++ {
		if _, err := svc.CalculateNextReview(schedule, quality, now); err != nil {
			t.Errorf("quality %d: unexpected error %v", quality, err)
		}
	}
}

func TestCalculateNextReviewIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := NewService()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	schedule := domain.CardSchedule{
		EaseFactor:   2.5,
		Interval:     6,
		Repetitions:  2,
		NextReviewAt: now,
	}

	first, err := svc.CalculateNextReview(schedule, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CalculateNextReview(schedule, 5, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
