package services

import (
	"context"
	"strings"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// SOSService records emergency alerts. Triggering is deliberately open to
// unauthenticated callers; only viewing the feed is admin-gated. Realtime
// fan-out happens off the inserted row (database notify -> listener), not here.
type SOSService struct {
	alerts ports.SOSRepository
}

var _ ports.SOSService = (*SOSService)(nil)

func NewSOSService(alerts ports.SOSRepository) *SOSService {
	return &SOSService{alerts: alerts}
}

func (s *SOSService) Trigger(ctx context.Context, roomNo, userID, displayName string) (*domain.SOSAlert, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, domain.ErrEmptyRoomNumber
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = domain.AnonymousName
	}

	return s.alerts.Create(ctx, domain.SOSAlert{
		RoomNo:          roomNo,
		TriggeredBy:     userID,
		TriggeredByName: name,
		IsAnonymous:     userID == "",
	})
}

func (s *SOSService) List(ctx context.Context) ([]domain.SOSAlert, error) {
	return s.alerts.ListAll(ctx)
}
