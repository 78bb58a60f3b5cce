package model

import "time"

type NoteType string

const (
	NoteTypeNote         NoteType = "note"
	NoteTypeCommendation NoteType = "commendation"
)

type Note struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Type      NoteType  `json:"type" db:"type"`
	Body      string    `json:"body" db:"body"`
	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
