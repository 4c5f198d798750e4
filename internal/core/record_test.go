package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// validInput returns prompt input for a fully specified record.
func validInput() RecordInput {
	return RecordInput{
		ID:             "S001",
		Name:           "Ann",
		Surname:        "Lee",
		Country:        "Canada",
		DateOfBirth:    "2004-06-15",
		StudyAbroad:    "yes",
		GPA:            "3.5",
		Major:          "Physics",
		EnrollmentDate: "2022-09-01",
		Email:          "ann.lee@example.com",
		PhoneNumber:    "+1-555-0100",
	}
}

// ----------------------------------------------------------------------------
// BuildRecord Tests
// ----------------------------------------------------------------------------

func TestBuildRecord(t *testing.T) {
	rec, err := BuildRecord(validInput())
	if err != nil {
		t.Fatalf("BuildRecord() error = %v", err)
	}

	if rec.ID != "S001" || rec.Name != "Ann" || rec.Surname != "Lee" {
		t.Errorf("BuildRecord() identity = %q %q %q, want S001 Ann Lee", rec.ID, rec.Name, rec.Surname)
	}
	if !rec.StudyAbroad {
		t.Error("BuildRecord() StudyAbroad = false, want true")
	}
	if rec.GPA != 3.5 {
		t.Errorf("BuildRecord() GPA = %v, want 3.5", rec.GPA)
	}
	if got := formatDate(rec.DateOfBirth); got != "2004-06-15" {
		t.Errorf("BuildRecord() DateOfBirth = %s, want 2004-06-15", got)
	}
	if got := formatDate(rec.EnrollmentDate); got != "2022-09-01" {
		t.Errorf("BuildRecord() EnrollmentDate = %s, want 2022-09-01", got)
	}
}

func TestBuildRecord_Defaults(t *testing.T) {
	in := RecordInput{ID: "S001", Name: "Ann", Surname: "Lee"}

	rec, err := BuildRecord(in)
	if err != nil {
		t.Fatalf("BuildRecord() error = %v", err)
	}

	if rec.Country != "" || rec.Major != "" || rec.Email != "" || rec.PhoneNumber != "" {
		t.Errorf("BuildRecord() optional text fields = %+v, want empty", rec)
	}
	if rec.StudyAbroad {
		t.Error("BuildRecord() StudyAbroad = true, want false")
	}
	if rec.GPA != 0 {
		t.Errorf("BuildRecord() GPA = %v, want 0", rec.GPA)
	}

	// Empty dates default to today.
	today := formatDate(time.Now())
	if got := formatDate(rec.DateOfBirth); got != today {
		t.Errorf("BuildRecord() DateOfBirth = %s, want %s", got, today)
	}
	if got := formatDate(rec.EnrollmentDate); got != today {
		t.Errorf("BuildRecord() EnrollmentDate = %s, want %s", got, today)
	}
}

func TestBuildRecord_TrimsInput(t *testing.T) {
	in := validInput()
	in.ID = "  S001  "
	in.Name = "﻿Ann"
	in.Country = " Canada "

	rec, err := BuildRecord(in)
	if err != nil {
		t.Fatalf("BuildRecord() error = %v", err)
	}
	if rec.ID != "S001" || rec.Name != "Ann" || rec.Country != "Canada" {
		t.Errorf("BuildRecord() did not clean input: %q %q %q", rec.ID, rec.Name, rec.Country)
	}
}

func TestBuildRecord_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RecordInput)
		wantField string
	}{
		{
			name:      "missing ID",
			mutate:    func(in *RecordInput) { in.ID = "" },
			wantField: "ID",
		},
		{
			name:      "whitespace-only name",
			mutate:    func(in *RecordInput) { in.Name = "   " },
			wantField: "Name",
		},
		{
			name:      "missing surname",
			mutate:    func(in *RecordInput) { in.Surname = "" },
			wantField: "Surname",
		},
		{
			name:      "slash date rejected",
			mutate:    func(in *RecordInput) { in.DateOfBirth = "2020/01/01" },
			wantField: "DateOfBirth",
		},
		{
			name:      "bad enrollment date",
			mutate:    func(in *RecordInput) { in.EnrollmentDate = "soon" },
			wantField: "EnrollmentDate",
		},
		{
			name:      "unrecognised answer",
			mutate:    func(in *RecordInput) { in.StudyAbroad = "maybe" },
			wantField: "IsStudyAbroad",
		},
		{
			name:      "grade average not a number",
			mutate:    func(in *RecordInput) { in.GPA = "high" },
			wantField: "GPA",
		},
		{
			name:      "grade average above range",
			mutate:    func(in *RecordInput) { in.GPA = "5.0" },
			wantField: "GPA",
		},
		{
			name:      "grade average below range",
			mutate:    func(in *RecordInput) { in.GPA = "-1" },
			wantField: "GPA",
		},
		{
			name:      "malformed email",
			mutate:    func(in *RecordInput) { in.Email = "not-an-email" },
			wantField: "Email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := BuildRecord(in)
			if err == nil {
				t.Fatal("BuildRecord() error = nil, want ValidationError")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("BuildRecord() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

// TestBuildRecord_OutOfRangeMessage pins the message the range check
// produces; the user-facing mapping keys off it.
func TestBuildRecord_OutOfRangeMessage(t *testing.T) {
	in := validInput()
	in.GPA = "5.0"

	_, err := BuildRecord(in)
	if err == nil {
		t.Fatal("BuildRecord() error = nil, want ValidationError")
	}
	if want := "must be between 0 and 4"; !strings.Contains(err.Error(), want) {
		t.Errorf("BuildRecord() error = %q, want it to contain %q", err, want)
	}
}

// ----------------------------------------------------------------------------
// Record Method Tests
// ----------------------------------------------------------------------------

func TestRecord_String(t *testing.T) {
	rec := Record{ID: "S001", Name: "Ann", Surname: "Lee"}
	if got, want := rec.String(), "Lee, Ann (S001)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecord_Equal(t *testing.T) {
	a := Record{ID: "S001", Name: "Ann"}
	b := Record{ID: "S001", Name: "Annabel"}
	c := Record{ID: "S002", Name: "Ann"}

	if !a.Equal(b) {
		t.Error("Equal() = false for records sharing an identifier")
	}
	if a.Equal(c) {
		t.Error("Equal() = true for records with different identifiers")
	}
}

func TestRecord_AgeAndYearsEnrolled(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		DateOfBirth:    time.Date(2004, time.June, 15, 0, 0, 0, 0, time.UTC),
		EnrollmentDate: time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
	}

	if got := rec.Age(now); got != 22 {
		t.Errorf("Age() = %d, want 22", got)
	}
	if got := rec.YearsEnrolled(now); got != 4 {
		t.Errorf("YearsEnrolled() = %d, want 4", got)
	}
}

func TestRecord_Details(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{
		ID:             "S001",
		Name:           "Ann",
		Surname:        "Lee",
		DateOfBirth:    time.Date(2004, time.June, 15, 0, 0, 0, 0, time.UTC),
		StudyAbroad:    true,
		GPA:            3.5,
		EnrollmentDate: time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
	}

	got := rec.Details(now)
	for _, want := range []string{
		"Ann Lee (S001)",
		"2004-06-15 (age 22)",
		"Study abroad:   yes",
		"GPA:            3.5",
		"2022-09-01 (4 years)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Details() missing %q in:\n%s", want, got)
		}
	}

	// Empty optional fields render as a dash.
	if !strings.Contains(got, "Country:        -") {
		t.Errorf("Details() empty country not dashed:\n%s", got)
	}
}

func TestRecord_Row(t *testing.T) {
	rec := Record{ID: "S001", Name: "Ann", Surname: "Lee", Country: "Canada", GPA: 3.5}

	got := rec.Row()
	want := Row{ID: "S001", Name: "Ann", Surname: "Lee", Country: "Canada"}
	if got != want {
		t.Errorf("Row() = %+v, want %+v", got, want)
	}
}

// TestRecord_InputRoundTrip verifies a record survives being rendered to
// prompt form and rebuilt.
func TestRecord_InputRoundTrip(t *testing.T) {
	orig, err := BuildRecord(validInput())
	if err != nil {
		t.Fatalf("BuildRecord() error = %v", err)
	}

	rebuilt, err := BuildRecord(orig.Input())
	if err != nil {
		t.Fatalf("BuildRecord(Input()) error = %v", err)
	}

	if rebuilt.ID != orig.ID || rebuilt.GPA != orig.GPA || rebuilt.StudyAbroad != orig.StudyAbroad {
		t.Errorf("round trip changed record: got %+v, want %+v", rebuilt, orig)
	}
	if formatDate(rebuilt.DateOfBirth) != formatDate(orig.DateOfBirth) {
		t.Errorf("round trip changed DateOfBirth: got %v, want %v", rebuilt.DateOfBirth, orig.DateOfBirth)
	}
}
