package core

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iordaniskot/registrar/internal/resolve"
)

// Diagnostic records one departure from the ideal during an import: a
// skipped line, a defaulted field or a renamed identifier. Line numbers
// are 1-based and count the header as line 1.
type Diagnostic struct {
	Line    int    // line the diagnostic refers to
	Field   string // column name, when the diagnostic concerns one field
	Value   string // the offending raw value, cleaned
	Reason  string
	Skipped bool // true when the whole line was dropped
}

// ImportResult is the full account of one import run. Imported plus
// Skipped equals the number of data lines read.
type ImportResult struct {
	BatchID     string
	FileName    string
	Records     []Record
	Imported    int
	Skipped     int
	Diagnostics []Diagnostic
}

// maxLineBytes caps a single roster line. Lines past it indicate a
// binary or corrupt file, not a roster.
const maxLineBytes = 1 << 20

// ImportCSV reads a roster CSV from r. Line 1 is taken for the header
// and skipped, whatever it contains. Unreadable optional cells fall
// back to documented defaults, lines missing a required field are
// skipped, and colliding identifiers go through strategy; every
// departure is reported as a Diagnostic.
//
// Content never fails an import. A non-nil error means the reader
// itself failed, and comes back alongside the partial result.
//
// existing holds identifiers taken outside the batch. Records accepted
// earlier in the same run count as taken too, so a file that repeats an
// identifier conflicts with itself.
func ImportCSV(r io.Reader, existing map[string]struct{}, strategy resolve.Strategy) (ImportResult, error) {
	res := ImportResult{BatchID: uuid.New().String()}
	resolver := resolve.New(strategy)
	now := time.Now()

	batch := make(map[string]struct{})
	lookup := func(id string) (resolve.Source, bool) {
		if _, ok := batch[id]; ok {
			return resolve.SourceBatch, true
		}
		if _, ok := existing[id]; ok {
			return resolve.SourceExisting, true
		}
		return "", false
	}

	addDiag := func(d Diagnostic) {
		res.Diagnostics = append(res.Diagnostics, d)
		slog.Debug("import diagnostic",
			"batch_id", res.BatchID,
			"line", d.Line,
			"field", d.Field,
			"skipped", d.Skipped,
			"reason", d.Reason,
		)
	}

	slog.Info("import started", "batch_id", res.BatchID)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			// The header is never data, whatever it says.
			continue
		}

		rec, diags, ok := parseLine(sc.Text(), line, now)
		for _, d := range diags {
			addDiag(d)
		}
		if !ok {
			res.Skipped++
			continue
		}

		outcome := resolver.Run(rec.ID, line, lookup)
		if !resolve.IsAccepted(outcome.State) {
			res.Skipped++
			reason := "duplicate identifier, line skipped"
			if src, taken := lookup(rec.ID); taken {
				reason = fmt.Sprintf("duplicate identifier in %s, line skipped", src)
			}
			addDiag(Diagnostic{
				Line:    line,
				Field:   columns[colID].name,
				Value:   rec.ID,
				Reason:  reason,
				Skipped: true,
			})
			continue
		}
		if outcome.ID != rec.ID {
			addDiag(Diagnostic{
				Line:   line,
				Field:  columns[colID].name,
				Value:  rec.ID,
				Reason: fmt.Sprintf("duplicate identifier, replaced with %q", outcome.ID),
			})
			rec.ID = outcome.ID
		}

		batch[rec.ID] = struct{}{}
		res.Records = append(res.Records, rec)
	}
	res.Imported = len(res.Records)

	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read: %w", err)
	}

	slog.Info("import finished",
		"batch_id", res.BatchID,
		"imported", res.Imported,
		"skipped", res.Skipped,
		"diagnostics", len(res.Diagnostics),
	)
	return res, nil
}

// parseLine turns one data line into a record. ok is false when the
// line is skipped, with the diagnostic saying why. Rows shorter than
// the full layout are fine; missing trailing cells read as empty.
func parseLine(text string, line int, now time.Time) (rec Record, diags []Diagnostic, ok bool) {
	parts := strings.Split(text, ",")

	for i, spec := range columns {
		if spec.required && fieldAt(parts, i) == "" {
			return Record{}, []Diagnostic{{
				Line:    line,
				Field:   spec.name,
				Reason:  "missing required field, line skipped",
				Skipped: true,
			}}, false
		}
	}

	rec = Record{
		ID:          fieldAt(parts, colID),
		Name:        fieldAt(parts, colName),
		Surname:     fieldAt(parts, colSurname),
		Country:     fieldAt(parts, colCountry),
		StudyAbroad: parseFlag(fieldAt(parts, colStudyAbroad)),
		Major:       fieldAt(parts, colMajor),
		Email:       fieldAt(parts, colEmail),
		PhoneNumber: fieldAt(parts, colPhoneNumber),
	}
	rec.DateOfBirth = importDate(fieldAt(parts, colDateOfBirth), columns[colDateOfBirth].name, line, now, &diags)
	rec.EnrollmentDate = importDate(fieldAt(parts, colEnrollmentDate), columns[colEnrollmentDate].name, line, now, &diags)
	rec.GPA = importGPA(fieldAt(parts, colGPA), line, &diags)

	return rec, diags, true
}

// importDate reads a date cell the forgiving way. Empty cells default
// to now silently; unreadable ones default to now with a diagnostic.
func importDate(s, field string, line int, now time.Time, diags *[]Diagnostic) time.Time {
	if s == "" {
		return now
	}
	t, ok := parseDate(s)
	if !ok {
		*diags = append(*diags, Diagnostic{
			Line:   line,
			Field:  field,
			Value:  s,
			Reason: "not a YYYY-MM-DD date, using current date",
		})
		return now
	}
	return t
}

// importGPA reads a grade average cell the forgiving way. Empty cells
// default to 0 silently, unreadable ones default to 0 with a
// diagnostic, and out-of-range values are clamped with a diagnostic.
func importGPA(s string, line int, diags *[]Diagnostic) float64 {
	if s == "" {
		return 0
	}
	v, ok := parseGPA(s)
	if !ok {
		*diags = append(*diags, Diagnostic{
			Line:   line,
			Field:  columns[colGPA].name,
			Value:  s,
			Reason: "not a number, using 0.0",
		})
		return 0
	}
	v, moved := clampGPA(v)
	if moved {
		*diags = append(*diags, Diagnostic{
			Line:   line,
			Field:  columns[colGPA].name,
			Value:  s,
			Reason: fmt.Sprintf("out of range, clamped to %s", formatGPA(v)),
		})
	}
	return v
}

// ImportFile reads a roster CSV from path.
func ImportFile(path string, existing map[string]struct{}, strategy resolve.Strategy) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	res, err := ImportCSV(f, existing, strategy)
	res.FileName = filepath.Base(path)
	if err != nil {
		return res, fmt.Errorf("import %s: %w", path, err)
	}
	return res, nil
}
