package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS directory (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		kind VARCHAR(16) NOT NULL,
		national_id VARCHAR(32) NOT NULL,
		name VARCHAR(255) NOT NULL,
		grade VARCHAR(64) NOT NULL DEFAULT '',
		class_name VARCHAR(64) NOT NULL DEFAULT '',
		mobile VARCHAR(32) NOT NULL DEFAULT '',
		subject VARCHAR(128) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_directory_kind_nid (kind, national_id)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		student_id BIGINT NOT NULL,
		date CHAR(10) NOT NULL,
		time VARCHAR(5) NOT NULL,
		status VARCHAR(16) NOT NULL,
		points INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_attendance_student_date (student_id, date),
		KEY idx_attendance_date (date)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		student_id BIGINT NOT NULL,
		type VARCHAR(16) NOT NULL,
		body TEXT NOT NULL,
		created_by VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_notes_student (student_id)
	)`,
	`CREATE TABLE IF NOT EXISTS exit_requests (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		student_id BIGINT NOT NULL,
		reason VARCHAR(255) NOT NULL,
		date CHAR(10) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		requested_by VARCHAR(64) NOT NULL DEFAULT '',
		confirmed_by VARCHAR(64) NOT NULL DEFAULT '',
		confirmed_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_exit_date (date)
	)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		pass_id CHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		mobile VARCHAR(32) NOT NULL,
		purpose VARCHAR(255) NOT NULL DEFAULT '',
		checked_in TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checked_out TIMESTAMP NULL,
		UNIQUE KEY uq_visitors_pass (pass_id)
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		` + "`key`" + ` VARCHAR(64) PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'staff',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	)`,
}

// Bootstrap creates missing tables. Statements are idempotent so this
// runs unconditionally at startup.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	return nil
}
