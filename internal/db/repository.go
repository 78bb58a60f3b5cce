package db

import (
	"context"
	"database/sql"
	"strings"

	"school-admin-db/internal/model"
	"school-admin-db/pkg/errors"
)

type Repository interface {
	// Directory
	ListDirectory(ctx context.Context, kind model.RecordKind) ([]model.DirectoryRecord, error)
	GetDirectoryByNationalID(ctx context.Context, kind model.RecordKind, nationalID string) (*model.DirectoryRecord, error)
	UpsertDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) error
	UpsertDirectoryChunk(ctx context.Context, recs []model.DirectoryRecord) error
	EnsureDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) (int64, error)
	UpdateDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) error
	DeleteDirectoryRecord(ctx context.Context, id int64) error

	// Attendance
	UpsertAttendanceFacts(ctx context.Context, facts []model.AttendanceFact) error
	InsertAbsences(ctx context.Context, facts []model.AttendanceFact) (int64, error)
	AttendanceReport(ctx context.Context, date string) ([]model.ReportRow, error)

	// Notes
	InsertNote(ctx context.Context, note model.Note) (int64, error)
	ListNotes(ctx context.Context, studentID int64) ([]model.Note, error)

	// Exit permissions
	InsertExitRequest(ctx context.Context, req model.ExitRequest) (int64, error)
	ConfirmExitRequest(ctx context.Context, id int64, guard string) error
	ListExitRequests(ctx context.Context, date string) ([]model.ExitRequest, error)

	// Visitors
	InsertVisitor(ctx context.Context, v model.Visitor) (int64, error)
	CheckoutVisitor(ctx context.Context, passID string) error
	ListVisitors(ctx context.Context, date string) ([]model.Visitor, error)

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Users
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	InsertUser(ctx context.Context, user model.User) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const directoryColumns = `id, kind, national_id, name, grade, class_name, mobile, subject, created_at, updated_at`

func (r *repository) ListDirectory(ctx context.Context, kind model.RecordKind) ([]model.DirectoryRecord, error) {
	query := `SELECT ` + directoryColumns + ` FROM directory WHERE kind = ? ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.DirectoryRecord
	for rows.Next() {
		var rec model.DirectoryRecord
		if err := scanDirectory(rows, &rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *repository) GetDirectoryByNationalID(ctx context.Context, kind model.RecordKind, nationalID string) (*model.DirectoryRecord, error) {
	query := `SELECT ` + directoryColumns + ` FROM directory WHERE kind = ? AND national_id = ?`

	var rec model.DirectoryRecord
	err := scanDirectory(r.db.QueryRowContext(ctx, query, kind, nationalID), &rec)
	if err == sql.ErrNoRows {
		return nil, errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

const directoryUpsert = `INSERT INTO directory (kind, national_id, name, grade, class_name, mobile, subject)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		name = VALUES(name), grade = VALUES(grade), class_name = VALUES(class_name),
		mobile = VALUES(mobile), subject = VALUES(subject)`

// UpsertDirectoryRecord is a single atomic insert-or-update keyed on
// (kind, national_id). No exists-check precedes it, concurrent imports
// of the same row resolve at the unique index.
func (r *repository) UpsertDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) error {
	_, err := r.db.ExecContext(ctx, directoryUpsert,
		rec.Kind, rec.NationalID, rec.Name, rec.Grade, rec.ClassName, rec.Mobile, rec.Subject)
	return err
}

// UpsertDirectoryChunk writes one multi-row upsert statement for a chunk
// of roster rows. Later rows in the chunk win over earlier duplicates,
// matching file order.
func (r *repository) UpsertDirectoryChunk(ctx context.Context, recs []model.DirectoryRecord) error {
	if len(recs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO directory (kind, national_id, name, grade, class_name, mobile, subject) VALUES `)
	args := make([]interface{}, 0, len(recs)*7)
	for i, rec := range recs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, rec.Kind, rec.NationalID, rec.Name, rec.Grade, rec.ClassName, rec.Mobile, rec.Subject)
	}
	sb.WriteString(` ON DUPLICATE KEY UPDATE
		name = VALUES(name), grade = VALUES(grade), class_name = VALUES(class_name),
		mobile = VALUES(mobile), subject = VALUES(subject)`)

	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

// EnsureDirectoryRecord inserts a record discovered mid-batch and returns
// its id, or the id of the row that already holds the national ID. The
// LAST_INSERT_ID(id) trick makes insert-or-get a single statement, so two
// concurrent uploads can never race between check and insert.
func (r *repository) EnsureDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) (int64, error) {
	query := `INSERT INTO directory (kind, national_id, name, grade, class_name, mobile, subject)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`

	res, err := r.db.ExecContext(ctx, query,
		rec.Kind, rec.NationalID, rec.Name, rec.Grade, rec.ClassName, rec.Mobile, rec.Subject)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *repository) UpdateDirectoryRecord(ctx context.Context, rec model.DirectoryRecord) error {
	query := `UPDATE directory SET national_id = ?, name = ?, grade = ?, class_name = ?, mobile = ?, subject = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		rec.NationalID, rec.Name, rec.Grade, rec.ClassName, rec.Mobile, rec.Subject, rec.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *repository) DeleteDirectoryRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM directory WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpsertAttendanceFacts writes explicit facts for a chunk. A re-uploaded
// row overwrites the stored time/status/points for its (student, date).
func (r *repository) UpsertAttendanceFacts(ctx context.Context, facts []model.AttendanceFact) error {
	if len(facts) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO attendance (student_id, date, time, status, points) VALUES ")
	args := make([]interface{}, 0, len(facts)*5)
	for i, f := range facts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, f.StudentID, f.Date, f.Time, f.Status, f.Points)
	}
	sb.WriteString(` ON DUPLICATE KEY UPDATE
		time = VALUES(time), status = VALUES(status), points = VALUES(points)`)

	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

// InsertAbsences back-fills absence facts with insert-ignore semantics:
// an existing fact for (student, date) is left untouched, explicit
// presence always wins. Returns how many absence rows were actually
// created.
func (r *repository) InsertAbsences(ctx context.Context, facts []model.AttendanceFact) (int64, error) {
	if len(facts) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT IGNORE INTO attendance (student_id, date, time, status, points) VALUES ")
	args := make([]interface{}, 0, len(facts)*5)
	for i, f := range facts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, f.StudentID, f.Date, f.Time, f.Status, f.Points)
	}

	res, err := r.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) AttendanceReport(ctx context.Context, date string) ([]model.ReportRow, error) {
	query := `SELECT d.name, d.grade, d.class_name, a.time, a.status, a.points
		FROM attendance a
		JOIN directory d ON d.id = a.student_id
		WHERE a.date = ?
		ORDER BY d.name`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.ReportRow
	for rows.Next() {
		var row model.ReportRow
		if err := rows.Scan(&row.Name, &row.Grade, &row.ClassName, &row.Time, &row.Status, &row.Points); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDirectory(s rowScanner, rec *model.DirectoryRecord) error {
	return s.Scan(&rec.ID, &rec.Kind, &rec.NationalID, &rec.Name,
		&rec.Grade, &rec.ClassName, &rec.Mobile, &rec.Subject,
		&rec.CreatedAt, &rec.UpdatedAt)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.ErrRecordNotFound
	}
	return nil
}
