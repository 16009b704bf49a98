package domain

import "time"

type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "pending"
	ComplaintResolved ComplaintStatus = "resolved"
	ComplaintDeclined ComplaintStatus = "declined"
)

// Complaint is a student-filed issue report. StudentName and RoomNo are
// snapshotted from student_details at filing time; later room edits do not
// rewrite past complaints. Resolved and declined are terminal.
type Complaint struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"user_id"`
	StudentName           string          `json:"student_name"`
	RoomNo                string          `json:"room_no"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	ComplaintImageURL     string          `json:"complaint_image_url,omitempty"`
	Status                ComplaintStatus `json:"status"`
	ResolutionDescription string          `json:"resolution_description,omitempty"`
	ResolutionImageURL    string          `json:"resolution_image_url,omitempty"`
	ResolvedAt            *time.Time      `json:"resolved_at,omitempty"`
	ResolvedBy            string          `json:"resolved_by,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// Resolution carries the admin-supplied outcome applied to a pending complaint.
type Resolution struct {
	Description string
	ImageURL    string
	ResolvedBy  string
	ResolvedAt  time.Time
}
