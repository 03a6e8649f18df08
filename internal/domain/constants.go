package domain

// Booking form limits
const (
	MinNumberOfPeople        = 1
	MaxSpecialRequestsLength = 500
)

// Review limits
const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
	MaxCommentLength = 1000
)

// Navigation targets
const (
	PathTourCatalog = "/tours"
	PathMyBookings  = "/user/dashboard/my-bookings"
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultPaymentMethod used when the client does not choose one
const DefaultPaymentMethod PaymentMethod = "ONLINE"

// Field names used as keys in ValidationErrors
const (
	FieldNumberOfPeople  = "numberOfPeople"
	FieldSpecialRequests = "specialRequests"
	FieldStatus          = "status"
	FieldRating          = "rating"
	FieldComment         = "comment"
)
