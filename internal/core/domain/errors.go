package domain

import "errors"

// Auth failures. Surfaced to the caller as-is, never retried.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoRoleAssigned     = errors.New("no role assigned")
	ErrApprovalPending    = errors.New("admin approval pending")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrSessionExpired     = errors.New("session expired")
)

// Precondition failures: a required prior step is missing or input is
// incomplete. The caller is told what to complete first.
var (
	ErrRoomNotRegistered = errors.New("room not registered")
	ErrEmptyResolution   = errors.New("resolution description is required")
	ErrEmptyRoomNumber   = errors.New("room number is required")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrUnsupportedRole   = errors.New("unsupported role")
	ErrDetailsNotFound   = errors.New("student details not found")
)
