package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/services"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/mocks"
)

func TestStudentService_RegisterRoom_UpsertsByOwner(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	svc := services.NewStudentService(repo)
	ctx := context.Background()

	first, err := svc.RegisterRoom(ctx, domain.StudentDetails{UserID: "stu-1", Name: "Asha", RollNo: "21CS042", RoomNo: "B-204"})
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected a generated details id")
	}

	// Re-registering updates the same row instead of creating a second one.
	second, err := svc.RegisterRoom(ctx, domain.StudentDetails{UserID: "stu-1", Name: "Asha", RollNo: "21CS042", RoomNo: "C-101"})
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("details id changed on update: %q -> %q", first.ID, second.ID)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 details row, got %d", count)
	}
}

func TestStudentService_Details(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	repo.SeedDetails(domain.StudentDetails{ID: "d-1", UserID: "stu-1", Name: "Asha", RoomNo: "B-204"})
	svc := services.NewStudentService(repo)
	ctx := context.Background()

	details, err := svc.Details(ctx, "stu-1")
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.RoomNo != "B-204" {
		t.Errorf("room = %q, want B-204", details.RoomNo)
	}

	if _, err := svc.Details(ctx, "stranger"); !errors.Is(err, domain.ErrDetailsNotFound) {
		t.Fatalf("expected ErrDetailsNotFound, got %v", err)
	}
}

func TestStudentService_List(t *testing.T) {
	repo := mocks.NewMockStudentRepository()
	repo.SeedDetails(domain.StudentDetails{ID: "d-2", UserID: "stu-2", Name: "Ravi", RoomNo: "C-101"})
	repo.SeedDetails(domain.StudentDetails{ID: "d-1", UserID: "stu-1", Name: "Asha", RoomNo: "B-204"})
	svc := services.NewStudentService(repo)

	students, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	if students[0].RoomNo != "B-204" || students[1].RoomNo != "C-101" {
		t.Errorf("order = [%s %s], want room-number order", students[0].RoomNo, students[1].RoomNo)
	}
}
