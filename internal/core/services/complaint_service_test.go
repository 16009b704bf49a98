package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/mocks"
)

const (
	testComplaintBucket  = "complaint-images"
	testResolutionBucket = "resolution-images"
)

type complaintFixture struct {
	complaints *mocks.MockComplaintRepository
	students   *mocks.MockStudentRepository
	blobs      *mocks.MockBlobStore
	svc        *services.ComplaintService
}

func newComplaintFixture() *complaintFixture {
	complaints := mocks.NewMockComplaintRepository()
	students := mocks.NewMockStudentRepository()
	blobs := mocks.NewMockBlobStore()
	return &complaintFixture{
		complaints: complaints,
		students:   students,
		blobs:      blobs,
		svc:        services.NewComplaintService(complaints, students, blobs, testComplaintBucket, testResolutionBucket),
	}
}

func (f *complaintFixture) registerStudent(userID, name, roomNo string) {
	f.students.SeedDetails(domain.StudentDetails{
		ID:     "details-" + userID,
		UserID: userID,
		Name:   name,
		RollNo: "R-" + userID,
		RoomNo: roomNo,
		Email:  userID + "@dorm.test",
	})
}

func TestComplaintService_File_RequiresRoomRegistration(t *testing.T) {
	f := newComplaintFixture()

	_, err := f.svc.File(context.Background(), "stranger", "Leak", "Water leak in bathroom", nil)
	if !errors.Is(err, domain.ErrRoomNotRegistered) {
		t.Fatalf("expected ErrRoomNotRegistered, got %v", err)
	}
	if len(f.complaints.CreateCalls) != 0 {
		t.Error("no complaint row may be written without registered details")
	}
}

func TestComplaintService_File_SnapshotsStudentDetails(t *testing.T) {
	f := newComplaintFixture()
	f.registerStudent("stu-1", "Asha", "B-204")

	complaint, err := f.svc.File(context.Background(), "stu-1", "Broken fan", "Ceiling fan not working", nil)
	if err != nil {
		t.Fatalf("file: %v", err)
	}

	if complaint.StudentName != "Asha" || complaint.RoomNo != "B-204" {
		t.Errorf("snapshot = %q/%q, want Asha/B-204", complaint.StudentName, complaint.RoomNo)
	}
	if complaint.Status != domain.ComplaintPending {
		t.Errorf("status = %q, want pending", complaint.Status)
	}

	// A later room change must not rewrite the filed complaint.
	f.registerStudent("stu-1", "Asha", "C-101")
	stored := f.complaints.Complaint(complaint.ID)
	if stored == nil || stored.RoomNo != "B-204" {
		t.Errorf("stored room = %v, want the B-204 snapshot", stored)
	}
}

func TestComplaintService_File_WithImage(t *testing.T) {
	f := newComplaintFixture()
	f.registerStudent("stu-1", "Asha", "B-204")

	image := &ports.ImageUpload{
		Filename:    "leak.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	}
	complaint, err := f.svc.File(context.Background(), "stu-1", "Leak", "Water leak", image)
	if err != nil {
		t.Fatalf("file: %v", err)
	}

	if len(f.blobs.UploadCalls) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(f.blobs.UploadCalls))
	}
	call := f.blobs.UploadCalls[0]
	if call.Bucket != testComplaintBucket {
		t.Errorf("bucket = %q, want %q", call.Bucket, testComplaintBucket)
	}
	if !strings.HasPrefix(call.Path, "stu-1/") || !strings.HasSuffix(call.Path, ".png") {
		t.Errorf("object path = %q, want stu-1/<millis>.png", call.Path)
	}
	if complaint.ComplaintImageURL == "" {
		t.Error("expected a public image URL on the complaint")
	}
}

// A failed evidence upload fails the whole filing; no orphaned complaint row.
func TestComplaintService_File_UploadFailureAbortsFiling(t *testing.T) {
	f := newComplaintFixture()
	f.registerStudent("stu-1", "Asha", "B-204")
	f.blobs.UploadError = errors.New("bucket unavailable")

	image := &ports.ImageUpload{Filename: "leak.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	_, err := f.svc.File(context.Background(), "stu-1", "Leak", "Water leak", image)
	if err == nil {
		t.Fatal("expected filing to fail when the upload fails")
	}
	if len(f.complaints.CreateCalls) != 0 {
		t.Error("complaint row must not be written after a failed upload")
	}
}

func TestComplaintService_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		description string
		setup       func(*complaintFixture)
		wantErr     error
	}{
		{
			name:        "empty_description_rejected",
			description: "   ",
			wantErr:     domain.ErrEmptyResolution,
		},
		{
			name:        "pending_complaint_resolves",
			description: "Plumber replaced the valve",
			setup: func(f *complaintFixture) {
				f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})
			},
		},
		{
			name:        "already_resolved_is_noop",
			description: "Second attempt",
			setup: func(f *complaintFixture) {
				f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintResolved, ResolutionDescription: "First attempt"})
			},
		},
		{
			name:        "unknown_id_is_noop",
			description: "Fixed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newComplaintFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			err := f.svc.Resolve(context.Background(), "c-1", "admin-1", tt.description, nil)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestComplaintService_Resolve_StampsResolver(t *testing.T) {
	f := newComplaintFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})

	before := time.Now().UTC()
	if err := f.svc.Resolve(context.Background(), "c-1", "admin-1", "Replaced the fan motor", nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	stored := f.complaints.Complaint("c-1")
	if stored.Status != domain.ComplaintResolved {
		t.Fatalf("status = %q, want resolved", stored.Status)
	}
	if stored.ResolvedBy != "admin-1" {
		t.Errorf("resolved_by = %q, want admin-1", stored.ResolvedBy)
	}
	if stored.ResolvedAt == nil || stored.ResolvedAt.Before(before) {
		t.Errorf("resolved_at = %v, want a timestamp at or after %v", stored.ResolvedAt, before)
	}
}

// A resolved complaint keeps its first resolution even when a second resolve
// attempt lands.
func TestComplaintService_Resolve_TerminalStateIsImmutable(t *testing.T) {
	f := newComplaintFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})
	ctx := context.Background()

	if err := f.svc.Resolve(ctx, "c-1", "admin-1", "First resolution", nil); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if err := f.svc.Resolve(ctx, "c-1", "admin-2", "Second resolution", nil); err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if err := f.svc.Decline(ctx, "c-1"); err != nil {
		t.Fatalf("decline after resolve: %v", err)
	}

	stored := f.complaints.Complaint("c-1")
	if stored.Status != domain.ComplaintResolved {
		t.Errorf("status = %q, want resolved", stored.Status)
	}
	if stored.ResolutionDescription != "First resolution" || stored.ResolvedBy != "admin-1" {
		t.Errorf("resolution overwritten: %q by %q", stored.ResolutionDescription, stored.ResolvedBy)
	}
}

// A failed resolution image upload is logged and the resolution proceeds
// without the image.
func TestComplaintService_Resolve_ImageFailureIsNonFatal(t *testing.T) {
	f := newComplaintFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})
	f.blobs.UploadError = errors.New("bucket unavailable")

	image := &ports.ImageUpload{Filename: "after.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	if err := f.svc.Resolve(context.Background(), "c-1", "admin-1", "Fixed anyway", image); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	stored := f.complaints.Complaint("c-1")
	if stored.Status != domain.ComplaintResolved {
		t.Fatalf("status = %q, want resolved", stored.Status)
	}
	if stored.ResolutionImageURL != "" {
		t.Errorf("resolution image URL = %q, want empty after failed upload", stored.ResolutionImageURL)
	}
}

func TestComplaintService_Decline(t *testing.T) {
	f := newComplaintFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})

	if err := f.svc.Decline(context.Background(), "c-1"); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if got := f.complaints.Complaint("c-1").Status; got != domain.ComplaintDeclined {
		t.Errorf("status = %q, want declined", got)
	}

	// Declining again, or an unknown id, is a silent no-op.
	if err := f.svc.Decline(context.Background(), "c-1"); err != nil {
		t.Errorf("second decline: %v", err)
	}
	if err := f.svc.Decline(context.Background(), "missing"); err != nil {
		t.Errorf("unknown id decline: %v", err)
	}
}

func TestComplaintService_ListForOwner(t *testing.T) {
	f := newComplaintFixture()
	base := time.Now().UTC()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-old", UserID: "stu-1", CreatedAt: base.Add(-2 * time.Hour), Status: domain.ComplaintPending})
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-new", UserID: "stu-1", CreatedAt: base, Status: domain.ComplaintPending})
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-other", UserID: "stu-2", CreatedAt: base.Add(-time.Hour), Status: domain.ComplaintPending})

	owned, err := f.svc.ListForOwner(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(owned) != 2 {
		t.Fatalf("expected 2 complaints, got %d", len(owned))
	}
	if owned[0].ID != "c-new" || owned[1].ID != "c-old" {
		t.Errorf("order = [%s %s], want newest first", owned[0].ID, owned[1].ID)
	}
	for _, c := range owned {
		if c.UserID != "stu-1" {
			t.Errorf("foreign complaint %s leaked into owner listing", c.ID)
		}
	}
}
