package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Grade average bounds on the 4.0 scale. Imports clamp values into this
// range; the edit prompts reject them instead.
const (
	MinGPA = 0.0
	MaxGPA = 4.0
)

// validate backs validateRecord. Every store mutation runs through it,
// so an invalid record is never representable inside the store.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Record is one student in the roster. ID, Name and Surname are
// required; everything else is optional and defaults on import.
type Record struct {
	ID             string `validate:"required"`
	Name           string `validate:"required"`
	Surname        string `validate:"required"`
	Country        string
	DateOfBirth    time.Time
	StudyAbroad    bool
	GPA            float64 `validate:"gte=0,lte=4"`
	Major          string
	EnrollmentDate time.Time
	Email          string
	PhoneNumber    string
}

// Equal reports whether two records refer to the same student, which for
// the roster means the same identifier.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID
}

// String renders the one-line listing form, "Surname, Name (ID)".
func (r Record) String() string {
	return fmt.Sprintf("%s, %s (%s)", r.Surname, r.Name, r.ID)
}

// Age returns the student's age in whole calendar years as of now.
func (r Record) Age(now time.Time) int {
	return now.Year() - r.DateOfBirth.Year()
}

// YearsEnrolled returns how many calendar years the student has been
// enrolled as of now.
func (r Record) YearsEnrolled(now time.Time) int {
	return now.Year() - r.EnrollmentDate.Year()
}

// Details renders the full record view shown by the details screen.
func (r Record) Details(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", r.Name, r.Surname, r.ID)
	fmt.Fprintf(&b, "  Country:        %s\n", orDash(r.Country))
	fmt.Fprintf(&b, "  Date of birth:  %s (age %d)\n", formatDate(r.DateOfBirth), r.Age(now))
	fmt.Fprintf(&b, "  Study abroad:   %s\n", yesNo(r.StudyAbroad))
	fmt.Fprintf(&b, "  GPA:            %s\n", formatGPA(r.GPA))
	fmt.Fprintf(&b, "  Major:          %s\n", orDash(r.Major))
	fmt.Fprintf(&b, "  Enrolled:       %s (%d years)\n", formatDate(r.EnrollmentDate), r.YearsEnrolled(now))
	fmt.Fprintf(&b, "  Email:          %s\n", orDash(r.Email))
	fmt.Fprintf(&b, "  Phone:          %s", orDash(r.PhoneNumber))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// Row is the listing projection of a record. It is derived from the
// store on demand and never kept alongside it.
type Row struct {
	ID      string
	Name    string
	Surname string
	Country string
}

// Row returns the listing projection of the record.
func (r Record) Row() Row {
	return Row{ID: r.ID, Name: r.Name, Surname: r.Surname, Country: r.Country}
}

// RecordInput carries the raw answers collected at the edit prompts, one
// string per field, before any parsing or validation.
type RecordInput struct {
	ID             string
	Name           string
	Surname        string
	Country        string
	DateOfBirth    string
	StudyAbroad    string
	GPA            string
	Major          string
	EnrollmentDate string
	Email          string
	PhoneNumber    string
}

// Input renders the record back into prompt form. The edit flow uses it
// to pre-fill prompts with current values.
func (r Record) Input() RecordInput {
	return RecordInput{
		ID:             r.ID,
		Name:           r.Name,
		Surname:        r.Surname,
		Country:        r.Country,
		DateOfBirth:    formatDate(r.DateOfBirth),
		StudyAbroad:    strconv.FormatBool(r.StudyAbroad),
		GPA:            formatGPA(r.GPA),
		Major:          r.Major,
		EnrollmentDate: formatDate(r.EnrollmentDate),
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
	}
}

// BuildRecord parses and validates prompt input into a Record. Unlike
// the importer it rejects anything it cannot read: bad dates, bad
// numbers, out-of-range grade averages and malformed emails all come
// back as a ValidationError, and nothing is stored.
//
// Empty optional fields keep their defaults; an empty date means today.
func BuildRecord(in RecordInput) (Record, error) {
	rec := Record{
		ID:          cleanCell(in.ID),
		Name:        cleanCell(in.Name),
		Surname:     cleanCell(in.Surname),
		Country:     cleanCell(in.Country),
		Major:       cleanCell(in.Major),
		Email:       cleanCell(in.Email),
		PhoneNumber: cleanCell(in.PhoneNumber),
	}

	var err error
	if rec.DateOfBirth, err = parseDateInput(columns[colDateOfBirth].name, in.DateOfBirth); err != nil {
		return Record{}, err
	}
	if rec.EnrollmentDate, err = parseDateInput(columns[colEnrollmentDate].name, in.EnrollmentDate); err != nil {
		return Record{}, err
	}

	abroad, ok := parseAnswer(in.StudyAbroad)
	if !ok {
		return Record{}, ValidationError{
			Field:   columns[colStudyAbroad].name,
			Value:   in.StudyAbroad,
			Message: "answer yes or no",
		}
	}
	rec.StudyAbroad = abroad

	if s := cleanCell(in.GPA); s != "" {
		v, ok := parseGPA(s)
		if !ok {
			return Record{}, ValidationError{
				Field:   columns[colGPA].name,
				Value:   s,
				Message: "not a number",
			}
		}
		rec.GPA = v
	}

	if rec.Email != "" {
		if err := validate.Var(rec.Email, "email"); err != nil {
			return Record{}, ValidationError{
				Field:   columns[colEmail].name,
				Value:   rec.Email,
				Message: "not a valid email address",
			}
		}
	}

	if err := validateRecord(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// parseDateInput reads a date answer. Empty means today; anything else
// must match the roster date layout.
func parseDateInput(field, s string) (time.Time, error) {
	s = cleanCell(s)
	if s == "" {
		return time.Now(), nil
	}
	t, ok := parseDate(s)
	if !ok {
		return time.Time{}, ValidationError{Field: field, Value: s, Message: "not a YYYY-MM-DD date"}
	}
	return t, nil
}

// validateRecord enforces the invariants every stored record satisfies:
// required fields are non-blank and the grade average is in range. All
// store mutations call it, whichever path the record arrived by.
func validateRecord(rec Record) error {
	required := []struct{ name, value string }{
		{columns[colID].name, rec.ID},
		{columns[colName].name, rec.Name},
		{columns[colSurname].name, rec.Surname},
	}
	for _, f := range required {
		// The required tag accepts whitespace-only values; the roster
		// does not.
		if strings.TrimSpace(f.value) == "" {
			return ValidationError{Field: f.name, Value: f.value, Message: "required field is empty"}
		}
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validationMessage(verrs[0])
		}
		return fmt.Errorf("validate record: %w", err)
	}
	return nil
}

// validationMessage translates a validator tag failure into the roster's
// own ValidationError.
func validationMessage(e validator.FieldError) ValidationError {
	msg := "invalid value"
	switch e.Tag() {
	case "required":
		msg = "required field is empty"
	case "gte", "lte":
		msg = fmt.Sprintf("must be between %v and %v", MinGPA, MaxGPA)
	}
	return ValidationError{
		Field:   e.Field(),
		Value:   fmt.Sprintf("%v", e.Value()),
		Message: msg,
	}
}
