package db

import (
	"context"
	"database/sql"

	"school-admin-db/internal/model"
	"school-admin-db/pkg/errors"
)

func (r *repository) InsertNote(ctx context.Context, note model.Note) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (student_id, type, body, created_by) VALUES (?, ?, ?, ?)`,
		note.StudentID, note.Type, note.Body, note.CreatedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repository) ListNotes(ctx context.Context, studentID int64) ([]model.Note, error) {
	query := `SELECT id, student_id, type, body, created_by, created_at FROM notes`
	args := []interface{}{}
	if studentID > 0 {
		query += ` WHERE student_id = ?`
		args = append(args, studentID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Type, &n.Body, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *repository) InsertExitRequest(ctx context.Context, req model.ExitRequest) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO exit_requests (student_id, reason, date, status, requested_by) VALUES (?, ?, ?, 'pending', ?)`,
		req.StudentID, req.Reason, req.Date, req.RequestedBy)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repository) ConfirmExitRequest(ctx context.Context, id int64, guard string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE exit_requests SET status = 'confirmed', confirmed_by = ?, confirmed_at = NOW()
		 WHERE id = ? AND status = 'pending'`,
		guard, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *repository) ListExitRequests(ctx context.Context, date string) ([]model.ExitRequest, error) {
	query := `SELECT id, student_id, reason, date, status, requested_by, confirmed_by, confirmed_at, created_at
		FROM exit_requests`
	args := []interface{}{}
	if date != "" {
		query += ` WHERE date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []model.ExitRequest
	for rows.Next() {
		var req model.ExitRequest
		var confirmedAt sql.NullTime
		if err := rows.Scan(&req.ID, &req.StudentID, &req.Reason, &req.Date, &req.Status,
			&req.RequestedBy, &req.ConfirmedBy, &confirmedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		if confirmedAt.Valid {
			req.ConfirmedAt = &confirmedAt.Time
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *repository) InsertVisitor(ctx context.Context, v model.Visitor) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO visitors (pass_id, name, mobile, purpose) VALUES (?, ?, ?, ?)`,
		v.PassID, v.Name, v.Mobile, v.Purpose)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repository) CheckoutVisitor(ctx context.Context, passID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE visitors SET checked_out = NOW() WHERE pass_id = ? AND checked_out IS NULL`,
		passID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *repository) ListVisitors(ctx context.Context, date string) ([]model.Visitor, error) {
	query := `SELECT id, pass_id, name, mobile, purpose, checked_in, checked_out FROM visitors`
	args := []interface{}{}
	if date != "" {
		query += ` WHERE DATE(checked_in) = ?`
		args = append(args, date)
	}
	query += ` ORDER BY checked_in DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []model.Visitor
	for rows.Next() {
		var v model.Visitor
		var checkedOut sql.NullTime
		if err := rows.Scan(&v.ID, &v.PassID, &v.Name, &v.Mobile, &v.Purpose, &v.CheckedIn, &checkedOut); err != nil {
			return nil, err
		}
		if checkedOut.Valid {
			v.CheckedOut = &checkedOut.Time
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (r *repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE `key` = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.ErrRecordNotFound
	}
	return value, err
}

func (r *repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO settings (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
		key, value)
	return err
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`,
		username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) InsertUser(ctx context.Context, user model.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
