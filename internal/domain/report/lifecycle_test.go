package report

import (
	"testing"

	appErrors "lost-and-found/pkg/errors"
)

func TestValidateLostTransition(t *testing.T) {
	tests := []struct {
		name     string
		current  LostStatus
		next     LostStatus
		wantCode string
	}{
		{"pending to approved", LostPending, LostApproved, ""},
		{"pending to rejected", LostPending, LostRejected, ""},
		{"re-approve", LostApproved, LostApproved, ""},
		{"re-reject", LostRejected, LostRejected, ""},
		{"approved to rejected", LostApproved, LostRejected, appErrors.CodeInvalidTransition},
		{"rejected to approved", LostRejected, LostApproved, appErrors.CodeInvalidTransition},
		{"back to pending", LostApproved, LostPending, appErrors.CodeInvalidTransition},
		{"unknown current", LostStatus("LOST"), LostApproved, appErrors.CodeInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLostTransition(tt.current, tt.next)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected transition to be allowed, got %v", err)
				}
				return
			}
			if got := appErrors.CodeOf(err); got != tt.wantCode {
				t.Fatalf("expected code %q, got %q (err=%v)", tt.wantCode, got, err)
			}
		})
	}
}

func TestForceLostApproved(t *testing.T) {
	for _, s := range []LostStatus{LostPending, LostApproved, LostRejected} {
		if err := ForceLostApproved(s); err != nil {
			t.Errorf("claim cascade from %s should be allowed: %v", s, err)
		}
	}
	if appErrors.CodeOf(ForceLostApproved("LOST")) != appErrors.CodeInvalidStatus {
		t.Error("expected unknown lost status to be rejected")
	}
}

func TestValidateFoundStatus(t *testing.T) {
	for _, s := range []FoundStatus{FoundPending, FoundClaimed, FoundRejected} {
		if err := ValidateFoundStatus(s); err != nil {
			t.Errorf("status %s should be valid: %v", s, err)
		}
	}
	if appErrors.CodeOf(ValidateFoundStatus("LOST")) != appErrors.CodeInvalidStatus {
		t.Error("expected unknown found status to be rejected")
	}
}
