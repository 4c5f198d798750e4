package core

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ExportCSV writes records to w in the fixed roster layout: the Header
// line, then one line per record in order. Values are written verbatim
// with no quoting. An empty roster is an error and nothing is written.
func ExportCSV(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if _, err := bw.WriteString(exportLine(rec) + "\n"); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// exportLine renders one record as a roster line.
func exportLine(rec Record) string {
	fields := [columnCount]string{
		colID:             rec.ID,
		colName:           rec.Name,
		colSurname:        rec.Surname,
		colCountry:        rec.Country,
		colDateOfBirth:    formatDate(rec.DateOfBirth),
		colStudyAbroad:    strconv.FormatBool(rec.StudyAbroad),
		colGPA:            formatGPA(rec.GPA),
		colMajor:          rec.Major,
		colEnrollmentDate: formatDate(rec.EnrollmentDate),
		colEmail:          rec.Email,
		colPhoneNumber:    rec.PhoneNumber,
	}
	return strings.Join(fields[:], ",")
}

// ExportFile writes the roster to path. An empty roster fails before the
// file is created, so no artifact is left behind. A failure mid-write
// can leave a truncated file; exporting again overwrites it.
func ExportFile(path string, records []Record) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ExportCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	slog.Info("roster exported", "path", path, "records", len(records))
	return nil
}
