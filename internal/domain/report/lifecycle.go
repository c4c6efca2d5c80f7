package report

import (
	"fmt"

	appErrors "lost-and-found/pkg/errors"
)

var lostTransitions = map[LostStatus][]LostStatus{
	LostPending: {
		LostApproved,
		LostRejected,
	},
	LostApproved: {
		LostApproved,
	},
	LostRejected: {
		LostRejected,
	},
}

// ValidateLostTransition checks whether a lost report may move from current to next.
func ValidateLostTransition(current, next LostStatus) error {
	allowed, exists := lostTransitions[current]
	if !exists {
		return appErrors.NewAppError(
			appErrors.CodeInvalidStatus,
			fmt.Sprintf("Unknown current status: %s", current),
			nil,
		)
	}

	for _, s := range allowed {
		if s == next {
			return nil
		}
	}

	return appErrors.NewAppError(
		appErrors.CodeInvalidTransition,
		fmt.Sprintf("Cannot transition lost report from %s to %s", current, next),
		nil,
	)
}

// ForceLostApproved guards the found-side cascade. Claiming a found report
// approves its lost report from any known status, REJECTED included; only
// the admin decision path treats REJECTED as terminal.
func ForceLostApproved(current LostStatus) error {
	if _, exists := lostTransitions[current]; !exists {
		return appErrors.NewAppError(
			appErrors.CodeInvalidStatus,
			fmt.Sprintf("Unknown current status: %s", current),
			nil,
		)
	}
	return nil
}

func AllowedLostTransitions(current LostStatus) []LostStatus {
	return lostTransitions[current]
}

// ValidateFoundStatus accepts any known status; admins may set found reports freely.
func ValidateFoundStatus(status FoundStatus) error {
	if !status.IsValid() {
		return appErrors.NewAppError(
			appErrors.CodeInvalidStatus,
			fmt.Sprintf("Unknown found report status: %s", status),
			nil,
		)
	}
	return nil
}
