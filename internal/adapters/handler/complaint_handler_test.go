package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/handler"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/middleware"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/mocks"
)

type complaintHandlerFixture struct {
	complaints *mocks.MockComplaintRepository
	students   *mocks.MockStudentRepository
	blobs      *mocks.MockBlobStore
	h          *handler.ComplaintHandler
}

func newComplaintHandlerFixture() *complaintHandlerFixture {
	complaints := mocks.NewMockComplaintRepository()
	students := mocks.NewMockStudentRepository()
	blobs := mocks.NewMockBlobStore()
	svc := services.NewComplaintService(complaints, students, blobs, "complaint-images", "resolution-images")
	return &complaintHandlerFixture{
		complaints: complaints,
		students:   students,
		blobs:      blobs,
		h:          handler.NewComplaintHandler(svc),
	}
}

// multipartBody builds a multipart form with text fields and an optional
// image part.
func multipartBody(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if imageName != "" {
		part, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(imageData)); err != nil {
			t.Fatalf("write image part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func authenticatedRequest(method, target string, body io.Reader, contentType, userID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestComplaintHandler_File(t *testing.T) {
	f := newComplaintHandlerFixture()
	f.students.SeedDetails(domain.StudentDetails{ID: "d-1", UserID: "stu-1", Name: "Asha", RoomNo: "B-204"})

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Broken fan",
		"description": "Ceiling fan stopped working",
	}, "fan.jpg", []byte("jpeg-bytes"))

	req := authenticatedRequest(http.MethodPost, "/complaints", body, contentType, "stu-1")
	rec := httptest.NewRecorder()

	f.h.File(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	resp := decodeJSON(t, rec)
	if resp["student_name"] != "Asha" || resp["room_no"] != "B-204" {
		t.Errorf("snapshot = %v/%v, want Asha/B-204", resp["student_name"], resp["room_no"])
	}
	if resp["status"] != "pending" {
		t.Errorf("status = %v, want pending", resp["status"])
	}
	if url, _ := resp["complaint_image_url"].(string); url == "" {
		t.Error("expected an evidence image URL")
	}
	if len(f.blobs.UploadCalls) != 1 {
		t.Errorf("expected 1 image upload, got %d", len(f.blobs.UploadCalls))
	}
}

func TestComplaintHandler_File_WithoutRoomRegistration(t *testing.T) {
	f := newComplaintHandlerFixture()

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Leak",
		"description": "Water leak",
	}, "", nil)

	req := authenticatedRequest(http.MethodPost, "/complaints", body, contentType, "stranger")
	rec := httptest.NewRecorder()

	f.h.File(rec, req)

	if rec.Code != http.StatusPreconditionFailed {
		t.Errorf("status = %d, want 412 before room registration", rec.Code)
	}
}

func TestComplaintHandler_File_MissingFields(t *testing.T) {
	f := newComplaintHandlerFixture()

	body, contentType := multipartBody(t, map[string]string{"title": "  "}, "", nil)
	req := authenticatedRequest(http.MethodPost, "/complaints", body, contentType, "stu-1")
	rec := httptest.NewRecorder()

	f.h.File(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestComplaintHandler_Resolve(t *testing.T) {
	f := newComplaintHandlerFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})

	body, contentType := multipartBody(t, map[string]string{"description": "Replaced the motor"}, "", nil)
	req := authenticatedRequest(http.MethodPost, "/complaints/c-1/resolve", body, contentType, "admin-1")
	req.SetPathValue("id", "c-1")
	rec := httptest.NewRecorder()

	f.h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	stored := f.complaints.Complaint("c-1")
	if stored.Status != domain.ComplaintResolved || stored.ResolvedBy != "admin-1" {
		t.Errorf("stored = %q by %q, want resolved by admin-1", stored.Status, stored.ResolvedBy)
	}
}

func TestComplaintHandler_Resolve_EmptyDescription(t *testing.T) {
	f := newComplaintHandlerFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})

	body, contentType := multipartBody(t, map[string]string{"description": "   "}, "", nil)
	req := authenticatedRequest(http.MethodPost, "/complaints/c-1/resolve", body, contentType, "admin-1")
	req.SetPathValue("id", "c-1")
	rec := httptest.NewRecorder()

	f.h.Resolve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := f.complaints.Complaint("c-1").Status; got != domain.ComplaintPending {
		t.Errorf("status = %q, want still pending", got)
	}
}

func TestComplaintHandler_Decline(t *testing.T) {
	f := newComplaintHandlerFixture()
	f.complaints.SeedComplaint(domain.Complaint{ID: "c-1", Status: domain.ComplaintPending})

	req := authenticatedRequest(http.MethodPost, "/complaints/c-1/decline", nil, "", "admin-1")
	req.SetPathValue("id", "c-1")
	rec := httptest.NewRecorder()

	f.h.Decline(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := f.complaints.Complaint("c-1").Status; got != domain.ComplaintDeclined {
		t.Errorf("status = %q, want declined", got)
	}
}

func TestComplaintHandler_ListMine_EmptyIsArray(t *testing.T) {
	f := newComplaintHandlerFixture()

	req := authenticatedRequest(http.MethodGet, "/complaints/mine", nil, "", "stu-1")
	rec := httptest.NewRecorder()

	f.h.ListMine(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want an empty JSON array", got)
	}
}
