package core

// csv.go pins down the roster file layout. The exporter and the importer
// both index rows with the column constants below, so the constants, the
// Header line and the columns table must stay in the same order.

// Column positions in a roster line.
const (
	colID = iota
	colName
	colSurname
	colCountry
	colDateOfBirth
	colStudyAbroad
	colGPA
	colMajor
	colEnrollmentDate
	colEmail
	colPhoneNumber

	columnCount
)

// Header is the exact first line of every exported roster file. Imports
// skip line 1 unconditionally, whatever it contains.
const Header = "ID,Name,Surname,Country,DateOfBirth,IsStudyAbroad,GPA,Major,EnrollmentDate,Email,PhoneNumber"

// columnSpec describes one roster column.
type columnSpec struct {
	name     string
	required bool
}

// columns lists the roster columns in file order. An empty required
// column skips the whole line on import; empty optional columns fall
// back to their defaults.
var columns = [columnCount]columnSpec{
	colID:             {name: "ID", required: true},
	colName:           {name: "Name", required: true},
	colSurname:        {name: "Surname", required: true},
	colCountry:        {name: "Country"},
	colDateOfBirth:    {name: "DateOfBirth"},
	colStudyAbroad:    {name: "IsStudyAbroad"},
	colGPA:            {name: "GPA"},
	colMajor:          {name: "Major"},
	colEnrollmentDate: {name: "EnrollmentDate"},
	colEmail:          {name: "Email"},
	colPhoneNumber:    {name: "PhoneNumber"},
}
