package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/adapters/repository"
	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/domain"
)

const (
	primaryAdminEmail    = "primaryadmin@dormconnect.app"
	primaryAdminUsername = "Primary Admin"
	defaultPassword      = "ADMIN@123"
)

// Idempotent provisioning: creates the single primary admin account if no
// primary_admin role assignment exists yet, otherwise does nothing. Run
// out-of-band, never from the request path.
func main() {
	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		log.Fatal("DB_CONNECTION_STRING environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)

	exists, err := userRepo.HasPrimaryAdmin(ctx)
	if err != nil {
		log.Fatalf("failed to check for primary admin: %v", err)
	}
	if exists {
		log.Println("Primary admin already exists")
		return
	}

	password := os.Getenv("PRIMARY_ADMIN_PASSWORD")
	if password == "" {
		password = defaultPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        primaryAdminEmail,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	profile := domain.Profile{UserID: user.ID, Username: primaryAdminUsername}
	role := domain.RoleAssignment{
		UserID:         user.ID,
		Role:           domain.RolePrimaryAdmin,
		ApprovalStatus: domain.ApprovalApproved,
	}

	if err := userRepo.CreateUser(ctx, user, profile, role); err != nil {
		log.Fatalf("failed to create primary admin: %v", err)
	}

	log.Printf("Primary admin created successfully (%s)", primaryAdminEmail)
}
