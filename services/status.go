package services

import (
	"fmt"

	"labtrack-backend/models"
)

// CanStartActivity guards the pending -> in_progress transition.
func CanStartActivity(status string) error {
	switch status {
	case models.ActivityStatusPending:
		return nil
	case models.ActivityStatusInProgress:
		return fmt.Errorf("%w: activity already started", ErrInvalidState)
	case models.ActivityStatusFinalized:
		return fmt.Errorf("%w: activity already finished", ErrInvalidState)
	default:
		return fmt.Errorf("%w: unknown activity status %q", ErrInvalidState, status)
	}
}

// CanStopActivity guards the in_progress -> finalized transition.
func CanStopActivity(status string) error {
	switch status {
	case models.ActivityStatusInProgress:
		return nil
	case models.ActivityStatusPending:
		return fmt.Errorf("%w: activity not started", ErrInvalidState)
	case models.ActivityStatusFinalized:
		return fmt.Errorf("%w: activity already finished", ErrInvalidState)
	default:
		return fmt.Errorf("%w: unknown activity status %q", ErrInvalidState, status)
	}
}

// RecomputeWorkOrderStatus derives the work order status from its activities.
// Except for the terminal "closed" state the status is always a function of
// the activity statuses: nothing started means pending, everything finished
// means finalized, anything in between means in_progress.
func RecomputeWorkOrderStatus(current string, activities []models.Activity) string {
	if current == models.WorkOrderStatusClosed {
		return current
	}
	if len(activities) == 0 {
		return models.WorkOrderStatusPending
	}

	allPending := true
	allFinalized := true
	for _, a := range activities {
		if a.Status != models.ActivityStatusPending {
			allPending = false
		}
		if a.Status != models.ActivityStatusFinalized {
			allFinalized = false
		}
	}

	switch {
	case allPending:
		return models.WorkOrderStatusPending
	case allFinalized:
		return models.WorkOrderStatusFinalized
	default:
		return models.WorkOrderStatusInProgress
	}
}
