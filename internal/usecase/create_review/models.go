package create_review

import "github.com/m04kA/SMC-TourBooking/internal/domain"

// EligibilityRequest запрос на проверку возможности оставить отзыв
type EligibilityRequest struct {
	Session   domain.Session
	BookingID string
}

// Request модель запроса на создание отзыва
type Request struct {
	Session   domain.Session
	BookingID string
	Rating    int
	Comment   string
}

// Response итог создания отзыва
// Eligibility заполнен всегда; при блокирующем состоянии остальные поля пусты
type Response struct {
	Eligibility domain.ReviewEligibility
	Review      *domain.Review
	Errors      domain.ValidationErrors
	Message     string
	Created     bool
	Redirect    string
}

const (
	MsgReviewCreated = "Review submitted successfully!"
	MsgReviewFailed  = "Failed to submit review. Please try again."
)
