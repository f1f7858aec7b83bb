package domain

import "time"

// Urgency values match the freedesktop notification "urgency" hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// String returns human-readable urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Notification is a desktop notification request.
type Notification struct {
	Summary string
	Body    string
	Urgency Urgency
	Sound   string        // named system sound, empty for none
	Timeout time.Duration // zero means the notification server's default
}
