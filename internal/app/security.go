package app

import (
	"context"

	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/events"
)

// SecurityService runs the account security flows.
type SecurityService struct {
	app *App
}

// NewSecurityService creates a new security service
func NewSecurityService(app *App) *SecurityService {
	return &SecurityService{app: app}
}

// EnableTwoFactor generates a key, shows it, and enables two-factor with the
// code the user enters. The recovery key is shown once in a toast.
func (s *SecurityService) EnableTwoFactor(ctx context.Context) (bool, error) {
	key, err := s.app.Backend.GenerateTwoFactorKey(ctx)
	if err != nil {
		return false, s.app.fail("generate two-factor key", err)
	}

	outcome, err := s.app.Callers.ShowTwoFactorCodeDialog(ctx, dialog.TwoFactorParams{
		Title:              "Enable two-factor authentication",
		Description:        "Add this key to your authenticator app, then enter the code it shows.",
		KeyToDisplay:       key.Secret,
		KeyURL:             key.URL,
		ContinueButtonText: "Enable",
	})
	if err != nil {
		return false, s.app.abandoned("two-factor setup", err)
	}
	if outcome.Cancelled {
		return false, nil
	}

	recoveryKey, err := s.app.Backend.EnableTwoFactor(ctx, outcome.Value)
	if err != nil {
		return false, s.app.fail("enable two-factor", err)
	}

	// Sticky so the recovery key stays readable until the next toast
	s.app.EventBroker.Emit(events.StatusMessageEvent, events.StatusMessagePayload{
		Message: "Two-factor enabled. Recovery key: " + recoveryKey,
		Type:    events.StatusSuccess,
		Sticky:  true,
	})
	s.app.RefetchAccount()
	return true, nil
}

// DisableTwoFactor asks for a code or recovery key and turns two-factor off.
func (s *SecurityService) DisableTwoFactor(ctx context.Context) (bool, error) {
	outcome, err := s.app.Callers.ShowTwoFactorCodeDialog(ctx, dialog.TwoFactorParams{
		Title:                 "Disable two-factor authentication",
		Description:           "Enter a code from your authenticator app.",
		ContinueButtonText:    "Disable",
		ContinueButtonVariant: dialog.VariantDestructive,
	})
	if err != nil {
		return false, s.app.abandoned("disable two-factor", err)
	}
	if outcome.Cancelled {
		return false, nil
	}

	if err := s.app.Backend.DisableTwoFactor(ctx, outcome.Value); err != nil {
		return false, s.app.fail("disable two-factor", err)
	}

	s.app.status("Two-factor disabled", events.StatusSuccess)
	s.app.RefetchAccount()
	return true, nil
}

// ChangePassword opens the change password dialog, which saves on its own.
func (s *SecurityService) ChangePassword() {
	s.app.EventBroker.Emit(events.OpenChangePasswordDialogEvent, nil)
}
