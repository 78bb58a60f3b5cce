package model

import "time"

type Visitor struct {
	ID         int64      `json:"id" db:"id"`
	PassID     string     `json:"passId" db:"pass_id"`
	Name       string     `json:"name" db:"name"`
	Mobile     string     `json:"mobile" db:"mobile"`
	Purpose    string     `json:"purpose" db:"purpose"`
	CheckedIn  time.Time  `json:"checkedIn" db:"checked_in"`
	CheckedOut *time.Time `json:"checkedOut,omitempty" db:"checked_out"`
}
