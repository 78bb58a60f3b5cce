package model

import "time"

type ExitStatus string

const (
	ExitStatusPending   ExitStatus = "pending"
	ExitStatusConfirmed ExitStatus = "confirmed"
)

// ExitRequest is an admin-created permission for a student to leave,
// confirmed at the gate by a guard.
type ExitRequest struct {
	ID          int64      `json:"id" db:"id"`
	StudentID   int64      `json:"studentId" db:"student_id"`
	Reason      string     `json:"reason" db:"reason"`
	Date        string     `json:"date" db:"date"`
	Status      ExitStatus `json:"status" db:"status"`
	RequestedBy string     `json:"requestedBy" db:"requested_by"`
	ConfirmedBy string     `json:"confirmedBy,omitempty" db:"confirmed_by"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty" db:"confirmed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
