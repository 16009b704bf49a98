package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/mocks"
)

func TestSOSService_Trigger(t *testing.T) {
	tests := []struct {
		name          string
		roomNo        string
		userID        string
		displayName   string
		wantErr       error
		wantName      string
		wantAnonymous bool
	}{
		{
			name:        "identified_caller",
			roomNo:      "B-204",
			userID:      "stu-1",
			displayName: "Asha",
			wantName:    "Asha",
		},
		{
			name:          "no_session_defaults_to_anonymous",
			roomNo:        "B-204",
			wantName:      domain.AnonymousName,
			wantAnonymous: true,
		},
		{
			name:     "blank_name_with_session_still_labeled_anonymous",
			roomNo:   "B-204",
			userID:   "stu-1",
			wantName: domain.AnonymousName,
		},
		{
			name:    "blank_room_rejected",
			roomNo:  "   ",
			wantErr: domain.ErrEmptyRoomNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockSOSRepository()
			svc := services.NewSOSService(repo)

			alert, err := svc.Trigger(context.Background(), tt.roomNo, tt.userID, tt.displayName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(repo.CreateCalls) != 0 {
					t.Error("no alert row may be written for rejected input")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if alert.TriggeredByName != tt.wantName {
				t.Errorf("name = %q, want %q", alert.TriggeredByName, tt.wantName)
			}
			if alert.IsAnonymous != tt.wantAnonymous {
				t.Errorf("anonymous = %v, want %v", alert.IsAnonymous, tt.wantAnonymous)
			}
			if alert.CreatedAt.IsZero() {
				t.Error("expected a creation timestamp")
			}
		})
	}
}

func TestSOSService_Trigger_TrimsRoomNumber(t *testing.T) {
	repo := mocks.NewMockSOSRepository()
	svc := services.NewSOSService(repo)

	alert, err := svc.Trigger(context.Background(), "  B-204  ", "", "")
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if alert.RoomNo != "B-204" {
		t.Errorf("room = %q, want trimmed B-204", alert.RoomNo)
	}
}

func TestSOSService_List_SurfacesRepositoryError(t *testing.T) {
	repo := mocks.NewMockSOSRepository()
	repo.ListAllError = errors.New("connection reset")
	svc := services.NewSOSService(repo)

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected the repository error to surface")
	}
}
