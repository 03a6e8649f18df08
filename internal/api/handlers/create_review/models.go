package create_review

import (
	"github.com/m04kA/SMC-TourBooking/internal/domain"
	createReview "github.com/m04kA/SMC-TourBooking/internal/usecase/create_review"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// EligibilityResponse HTTP response model
type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
	domain.ReviewEligibility
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	Review   *domain.Review `json:"review,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReviewRequest) ToUseCaseRequest(session domain.Session, bookingID string) *createReview.Request {
	return &createReview.Request{
		Session:   session,
		BookingID: bookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func NewEligibilityResponse(e domain.ReviewEligibility) *EligibilityResponse {
	return &EligibilityResponse{Eligible: e.Eligible(), ReviewEligibility: e}
}
