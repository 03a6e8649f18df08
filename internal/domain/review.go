package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Review a tour review
type Review struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tourId"`
	BookingID string    `json:"bookingId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewDraft input of the create-review form
type ReviewDraft struct {
	BookingID string
	Rating    int
	Comment   string
}

// Validate checks rating and comment rules
func (d ReviewDraft) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if d.Rating < MinRating || d.Rating > MaxRating {
		errs.Set(FieldRating, fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating))
	}

	length := utf8.RuneCountInString(strings.TrimSpace(d.Comment))
	switch {
	case length < MinCommentLength:
		errs.Set(FieldComment, fmt.Sprintf("Comment must be at least %d characters", MinCommentLength))
	case length > MaxCommentLength:
		errs.Set(FieldComment, fmt.Sprintf("Maximum %d characters allowed", MaxCommentLength))
	}

	return errs
}

// CreateReviewRequest gateway payload for review creation
type CreateReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewIneligibleReason why the create-review page shows a blocking state
type ReviewIneligibleReason string

const (
	ReviewBookingNotFound    ReviewIneligibleReason = "not_found"
	ReviewBookingNotComplete ReviewIneligibleReason = "not_completed"
	ReviewAlreadyReviewed    ReviewIneligibleReason = "already_reviewed"
)

// ReviewEligibility result of the eligibility check
type ReviewEligibility struct {
	Booking *Booking               `json:"booking,omitempty"`
	Reason  ReviewIneligibleReason `json:"reason,omitempty"` // empty when eligible
	Message string                 `json:"message,omitempty"`
	Action  RecoveryAction         `json:"action"`
}

func (e ReviewEligibility) Eligible() bool {
	return e.Reason == ""
}

// CheckReviewEligibility booking must be COMPLETED and not reviewed yet
func CheckReviewEligibility(booking *Booking) ReviewEligibility {
	result := ReviewEligibility{
		Booking: booking,
		Action:  RecoveryAction{Label: "Back to my bookings", Path: PathMyBookings},
	}

	switch {
	case booking == nil:
		result.Reason = ReviewBookingNotFound
		result.Message = "Booking not found"
	case booking.IsReviewed:
		result.Reason = ReviewAlreadyReviewed
		result.Message = "You have already reviewed this booking"
	case booking.Status != StatusCompleted:
		result.Reason = ReviewBookingNotComplete
		result.Message = "You can only review completed tours"
	}

	return result
}

// RatingGroup reviews sharing one rating value
type RatingGroup struct {
	Rating  int      `json:"rating"`
	Count   int      `json:"count"`
	Reviews []Review `json:"reviews"`
}

// ReviewSummary reviews grouped by rating, highest first
type ReviewSummary struct {
	TourID        string        `json:"tourId"`
	Total         int           `json:"total"`
	AverageRating float64       `json:"averageRating"`
	Groups        []RatingGroup `json:"groups"`
}

// SummarizeReviews groups reviews by rating (5..1); out-of-range ratings are skipped
func SummarizeReviews(tourID string, reviews []Review) ReviewSummary {
	summary := ReviewSummary{TourID: tourID, Groups: make([]RatingGroup, 0, MaxRating)}

	byRating := make(map[int][]Review, MaxRating)
	sum := 0
	for _, r := range reviews {
		if r.Rating < MinRating || r.Rating > MaxRating {
			continue
		}
		byRating[r.Rating] = append(byRating[r.Rating], r)
		sum += r.Rating
		summary.Total++
	}

	for rating := MaxRating; rating >= MinRating; rating-- {
		group := byRating[rating]
		if group == nil {
			group = []Review{}
		}
		summary.Groups = append(summary.Groups, RatingGroup{
			Rating:  rating,
			Count:   len(group),
			Reviews: group,
		})
	}

	if summary.Total > 0 {
		summary.AverageRating = float64(sum) / float64(summary.Total)
	}

	return summary
}
