package domain

// StudentDetails holds the room registration a student must complete before
// filing complaints. One row per user, upserted by the owning student.
type StudentDetails struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
	RoomNo string `json:"room_no"`
	Email  string `json:"email"`
}
