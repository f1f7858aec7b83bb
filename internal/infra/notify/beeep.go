package notify

import (
	"context"

	"github.com/gen2brain/beeep"

	"github.com/bn-notify/bn/internal/domain"
)

// BeeepNotifier is the portable fallback. It cannot express urgency or
// timeouts; critical notifications use beeep.Alert for the audible cue.
type BeeepNotifier struct {
	notify func(title, message string, icon any) error
	alert  func(title, message string, icon any) error
}

// NewBeeep creates a notifier backed by beeep.
func NewBeeep() *BeeepNotifier {
	beeep.AppName = AppName
	return &BeeepNotifier{notify: beeep.Notify, alert: beeep.Alert}
}

// Show displays n.
func (b *BeeepNotifier) Show(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Urgency == domain.UrgencyCritical || n.Sound != "" {
		return b.alert(n.Summary, n.Body, "")
	}
	return b.notify(n.Summary, n.Body, "")
}
