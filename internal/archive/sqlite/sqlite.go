// Package sqlite is the SQLite-backed archive. Everything lives in one
// file on disk: the students table mirrors the in-memory roster keyed
// by position, and the operations table is the journal.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iordaniskot/registrar/internal/archive"
	"github.com/iordaniskot/registrar/internal/config"
	"github.com/iordaniskot/registrar/internal/core"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

// dateLayout is the day-precision form roster dates are stored in.
const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS students (
	position        INTEGER PRIMARY KEY,
	id              TEXT NOT NULL UNIQUE,
	name            TEXT NOT NULL,
	surname         TEXT NOT NULL,
	country         TEXT NOT NULL DEFAULT '',
	date_of_birth   TEXT NOT NULL,
	study_abroad    INTEGER NOT NULL DEFAULT 0,
	gpa             REAL NOT NULL DEFAULT 0,
	major           TEXT NOT NULL DEFAULT '',
	enrollment_date TEXT NOT NULL,
	email           TEXT NOT NULL DEFAULT '',
	phone_number    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS operations (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      TEXT NOT NULL,
	kind    TEXT NOT NULL,
	detail  TEXT NOT NULL DEFAULT '',
	records INTEGER NOT NULL DEFAULT 0,
	at      INTEGER NOT NULL
);
`

// Archive implements archive.Archive on a SQLite file.
type Archive struct {
	db           *sql.DB
	historyLimit int
}

var _ archive.Archive = (*Archive)(nil)

// New opens (or creates) the archive at cfg.Path and ensures the
// schema exists. cfg.HistoryLimit caps the journal; zero or negative
// keeps everything.
func New(cfg config.ArchiveConfig) (*Archive, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("archive.New: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive.New: create schema: %w", err)
	}
	return &Archive{db: db, historyLimit: cfg.HistoryLimit}, nil
}

// SaveRoster replaces the stored roster with records, atomically. The
// previous contents are gone once this returns nil.
func (a *Archive) SaveRoster(records []core.Record) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("SaveRoster: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return fmt.Errorf("SaveRoster: clear: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO students (
			position, id, name, surname, country, date_of_birth,
			study_abroad, gpa, major, enrollment_date, email, phone_number
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("SaveRoster: prepare: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.Exec(
			i, rec.ID, rec.Name, rec.Surname, rec.Country,
			rec.DateOfBirth.Format(dateLayout),
			rec.StudyAbroad, rec.GPA, rec.Major,
			rec.EnrollmentDate.Format(dateLayout),
			rec.Email, rec.PhoneNumber,
		)
		if err != nil {
			return fmt.Errorf("SaveRoster: insert position %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SaveRoster: commit: %w", err)
	}
	return nil
}

// LoadRoster returns the stored roster in its saved order.
func (a *Archive) LoadRoster() ([]core.Record, error) {
	rows, err := a.db.Query(`
		SELECT id, name, surname, country, date_of_birth,
		       study_abroad, gpa, major, enrollment_date, email, phone_number
		FROM students ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("LoadRoster: query: %w", err)
	}
	defer rows.Close()

	records := make([]core.Record, 0)
	for rows.Next() {
		var rec core.Record
		var dob, enrolled string

		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Surname, &rec.Country, &dob,
			&rec.StudyAbroad, &rec.GPA, &rec.Major, &enrolled,
			&rec.Email, &rec.PhoneNumber,
		); err != nil {
			return nil, fmt.Errorf("LoadRoster: scan: %w", err)
		}

		if rec.DateOfBirth, err = time.Parse(dateLayout, dob); err != nil {
			return nil, fmt.Errorf("LoadRoster: record %s date of birth: %w", rec.ID, err)
		}
		if rec.EnrollmentDate, err = time.Parse(dateLayout, enrolled); err != nil {
			return nil, fmt.Errorf("LoadRoster: record %s enrollment date: %w", rec.ID, err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadRoster: rows: %w", err)
	}

	return records, nil
}

// LogOperation appends op to the journal and prunes entries beyond the
// history limit, oldest first.
func (a *Archive) LogOperation(op archive.Operation) error {
	_, err := a.db.Exec(
		"INSERT INTO operations (id, kind, detail, records, at) VALUES (?, ?, ?, ?, ?)",
		op.ID, op.Kind, op.Detail, op.Records, op.At.Unix(),
	)
	if err != nil {
		return fmt.Errorf("LogOperation: insert: %w", err)
	}

	if a.historyLimit > 0 {
		_, err := a.db.Exec(
			"DELETE FROM operations WHERE seq NOT IN (SELECT seq FROM operations ORDER BY seq DESC LIMIT ?)",
			a.historyLimit,
		)
		if err != nil {
			return fmt.Errorf("LogOperation: prune: %w", err)
		}
	}
	return nil
}

// RecentOperations returns up to limit journal entries, newest first.
func (a *Archive) RecentOperations(limit int) ([]archive.Operation, error) {
	rows, err := a.db.Query(
		"SELECT id, kind, detail, records, at FROM operations ORDER BY seq DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("RecentOperations: query: %w", err)
	}
	defer rows.Close()

	ops := make([]archive.Operation, 0, limit)
	for rows.Next() {
		var op archive.Operation
		var at int64

		if err := rows.Scan(&op.ID, &op.Kind, &op.Detail, &op.Records, &at); err != nil {
			return nil, fmt.Errorf("RecentOperations: scan: %w", err)
		}
		op.At = time.Unix(at, 0)
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("RecentOperations: rows: %w", err)
	}

	return ops, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
