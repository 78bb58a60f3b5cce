package model

import "time"

type RecordKind string

const (
	KindStudent RecordKind = "student"
	KindTeacher RecordKind = "teacher"
)

// DirectoryRecord is one student or teacher, keyed by the national ID
// printed on imported rosters. Secondary fields are overwritten on every
// re-import of the same NationalID.
type DirectoryRecord struct {
	ID         int64      `json:"id" db:"id"`
	Kind       RecordKind `json:"kind" db:"kind"`
	NationalID string     `json:"nationalId" db:"national_id"`
	Name       string     `json:"name" db:"name"`
	Grade      string     `json:"grade" db:"grade"`
	ClassName  string     `json:"className" db:"class_name"`
	Mobile     string     `json:"mobile" db:"mobile"`
	Subject    string     `json:"subject" db:"subject"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
