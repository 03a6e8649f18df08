package domain

import (
	"fmt"
	"time"
)

// UnavailableReason explains why a tour cannot be booked
type UnavailableReason string

const (
	ReasonInactive       UnavailableReason = "inactive"
	ReasonFullyBooked    UnavailableReason = "fully_booked"
	ReasonAlreadyStarted UnavailableReason = "already_started"
)

// Availability derived eligibility facts for a tour snapshot.
// Computed once per load because the snapshot is immutable.
type Availability struct {
	AvailableSpots  int  `json:"availableSpots"`
	IsTourAvailable bool `json:"isTourAvailable"`
	IsTourInFuture  bool `json:"isTourInFuture"`
}

// CalculateAvailability derives availability from the snapshot at the given instant.
func CalculateAvailability(tour TourSnapshot, now time.Time) Availability {
	spots := tour.MaxGroupSize - tour.CurrentGroupSize
	if spots < 0 {
		spots = 0
	}

	return Availability{
		AvailableSpots:  spots,
		IsTourAvailable: tour.IsActive && spots > 0,
		IsTourInFuture:  tour.StartDate.After(now),
	}
}

// CanBook returns true if the booking form may be shown
func (a Availability) CanBook() bool {
	return a.IsTourAvailable && a.IsTourInFuture
}

// Notice returns the blocking notice for an unbookable tour, nil if bookable.
// Inactive wins over fully booked, fully booked wins over a past start date.
func (a Availability) Notice(tour TourSnapshot) *UnavailableNotice {
	if a.CanBook() {
		return nil
	}

	notice := &UnavailableNotice{
		TourID: tour.ID,
		Action: RecoveryAction{Label: "Browse tours", Path: PathTourCatalog},
	}

	switch {
	case !tour.IsActive:
		notice.Reason = ReasonInactive
		notice.Message = "This tour is not available for booking"
	case a.AvailableSpots == 0:
		notice.Reason = ReasonFullyBooked
		notice.Message = "This tour is fully booked"
	default:
		notice.Reason = ReasonAlreadyStarted
		notice.Message = fmt.Sprintf("This tour started on %s and can no longer be booked",
			tour.StartDate.Format(DateFormat))
	}

	return notice
}

// UnavailableNotice full-page blocking state with a single recovery action
type UnavailableNotice struct {
	TourID  string            `json:"tourId"`
	Reason  UnavailableReason `json:"reason"`
	Message string            `json:"message"`
	Action  RecoveryAction    `json:"action"`
}

// RecoveryAction the one way out of a blocking state
type RecoveryAction struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
