package services

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// ComplaintService drives the pending -> resolved | declined lifecycle.
// Filing is all-or-nothing: a failed evidence upload fails the whole filing.
// Resolution keeps the opposite policy: a failed resolution image upload is
// logged and the resolution proceeds without it.
type ComplaintService struct {
	complaints ports.ComplaintRepository
	students   ports.StudentRepository
	blobs      ports.BlobStore

	complaintBucket  string
	resolutionBucket string
}

var _ ports.ComplaintService = (*ComplaintService)(nil)

func NewComplaintService(
	complaints ports.ComplaintRepository,
	students ports.StudentRepository,
	blobs ports.BlobStore,
	complaintBucket, resolutionBucket string,
) *ComplaintService {
	return &ComplaintService{
		complaints:       complaints,
		students:         students,
		blobs:            blobs,
		complaintBucket:  complaintBucket,
		resolutionBucket: resolutionBucket,
	}
}

// File creates a complaint for the owning student. The owner must have
// registered room details first; name and room number are snapshotted from
// those details at filing time and never rewritten afterwards.
func (s *ComplaintService) File(ctx context.Context, ownerID, title, description string, image *ports.ImageUpload) (*domain.Complaint, error) {
	details, err := s.students.FindByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.ErrRoomNotRegistered
	}

	imageURL := ""
	if image != nil {
		imageURL, err = s.uploadImage(ctx, s.complaintBucket, ownerID, image)
		if err != nil {
			return nil, fmt.Errorf("upload complaint image: %w", err)
		}
	}

	complaint := domain.Complaint{
		ID:                uuid.NewString(),
		UserID:            ownerID,
		StudentName:       details.Name,
		RoomNo:            details.RoomNo,
		Title:             title,
		Description:       description,
		ComplaintImageURL: imageURL,
		Status:            domain.ComplaintPending,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Resolve transitions a pending complaint to resolved, stamping the resolver
// and timestamp. The update is conditional on status = pending, so a resolve
// racing a decline loses cleanly; an unknown id is a silent no-op.
func (s *ComplaintService) Resolve(ctx context.Context, complaintID, resolverID, description string, image *ports.ImageUpload) error {
	if strings.TrimSpace(description) == "" {
		return domain.ErrEmptyResolution
	}

	imageURL := ""
	if image != nil {
		url, err := s.uploadImage(ctx, s.resolutionBucket, resolverID, image)
		if err != nil {
			// Resolution still goes through without the image.
			log.Printf("complaints: resolution image upload failed for %s: %v", complaintID, err)
		} else {
			imageURL = url
		}
	}

	_, err := s.complaints.Resolve(ctx, complaintID, domain.Resolution{
		Description: description,
		ImageURL:    imageURL,
		ResolvedBy:  resolverID,
		ResolvedAt:  time.Now().UTC(),
	})
	return err
}

// Decline transitions a pending complaint to declined. No resolver identity
// or text is required.
func (s *ComplaintService) Decline(ctx context.Context, complaintID string) error {
	_, err := s.complaints.Decline(ctx, complaintID)
	return err
}

func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.ListAll(ctx)
}

func (s *ComplaintService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Complaint, error) {
	return s.complaints.ListByOwner(ctx, ownerID)
}

// uploadImage stores the attachment under {owner}/{unix_millis}.{ext} and
// returns the public URL. Same-owner collisions below millisecond granularity
// are not guarded, matching the established path convention.
func (s *ComplaintService) uploadImage(ctx context.Context, bucket, ownerID string, image *ports.ImageUpload) (string, error) {
	ext := strings.TrimPrefix(path.Ext(image.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	objectPath := fmt.Sprintf("%s/%d.%s", ownerID, time.Now().UnixMilli(), ext)

	if err := s.blobs.Upload(ctx, bucket, objectPath, image.Data, image.ContentType); err != nil {
		return "", err
	}
	return s.blobs.PublicURL(bucket, objectPath), nil
}
