package ports

import (
	"context"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

// SOSAlertPublisher pushes a newly inserted SOS alert to an external channel.
type SOSAlertPublisher interface {
	PublishSOSAlert(ctx context.Context, alert domain.SOSAlert) error
}

// SOSSubscription is a live feed of SOS alerts. Every subscriber sees every
// alert in insertion order; Close stops delivery and releases the channel.
type SOSSubscription interface {
	Alerts() <-chan domain.SOSAlert
	Close()
}

type SOSBroadcaster interface {
	Subscribe() SOSSubscription
}
