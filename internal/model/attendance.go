package model

import "time"

type AttendanceStatus string

const (
	StatusOnTime AttendanceStatus = "present"
	StatusLate   AttendanceStatus = "late"
	StatusAbsent AttendanceStatus = "absent"
)

const (
	PointsOnTime = 3
	PointsLate   = 1
	PointsAbsent = -1
)

// AbsentTime is the sentinel stored in the time column of absence rows.
const AbsentTime = "-"

// AttendanceFact is one student's outcome for one calendar date.
// Unique on (student_id, date); explicit rows always win over back-filled
// absences.
type AttendanceFact struct {
	ID        int64            `json:"id" db:"id"`
	StudentID int64            `json:"studentId" db:"student_id"`
	Date      string           `json:"date" db:"date"`
	Time      string           `json:"time" db:"time"`
	Status    AttendanceStatus `json:"status" db:"status"`
	Points    int              `json:"points" db:"points"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// ReportRow joins a fact with the directory for the per-date report.
type ReportRow struct {
	Name      string           `json:"name"`
	Grade     string           `json:"grade"`
	ClassName string           `json:"className"`
	Time      string           `json:"time"`
	Status    AttendanceStatus `json:"status"`
	Points    int              `json:"points"`
}
