package domain

import "time"

type Role string

const (
	RoleStudent      Role = "student"
	RoleAdmin        Role = "admin"
	RolePrimaryAdmin Role = "primary_admin"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// RoleAssignment binds a user to a role and an approval state. Student rows
// are approved at creation; admin rows start pending and stay unusable until
// a primary admin approves them. Rejection is a status value, not a deletion.
type RoleAssignment struct {
	UserID         string         `json:"user_id"`
	Role           Role           `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// AdminListing is a user_roles row joined against profiles for the admin
// management view. Username is "Unknown" when no profile row exists.
type AdminListing struct {
	UserID         string         `json:"user_id"`
	Username       string         `json:"username"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// Session is the resolved identity of an authenticated caller. Role is only
// populated after the approval gate has been passed at sign-in.
type Session struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}
