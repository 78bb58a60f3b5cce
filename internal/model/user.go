package model

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuard Role = "guard"
	RoleStaff Role = "staff"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
