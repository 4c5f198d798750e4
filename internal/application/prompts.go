package application

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iordaniskot/registrar/internal/core"
)

// errAborted reports that the user backed out of a prompt. The menu
// loop swallows it and shows the menu again.
var errAborted = errors.New("aborted")

// readLine reads one line of input with the ends trimmed. A final
// unterminated line still counts.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// prompt asks for one value. An empty answer takes the default, which
// is shown in brackets when there is one.
func (a *App) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(a.out, "%s: ", label)
	}

	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// confirm asks a yes/no question. An empty answer means no.
func (a *App) confirm(label string) (bool, error) {
	for {
		answer, err := a.prompt(label+" (yes/no)", "")
		if err != nil {
			return false, err
		}

		v, ok := core.ParseAnswer(answer)
		if ok {
			return v, nil
		}
		fmt.Fprintln(a.out, "Please answer yes or no.")
	}
}

// pickRecord asks for a roster position and returns the record there
// along with its zero-based index. A blank answer aborts.
func (a *App) pickRecord() (core.Record, int, error) {
	if a.store.Len() == 0 {
		fmt.Fprintln(a.out, "The roster is empty.")
		return core.Record{}, 0, errAborted
	}

	answer, err := a.prompt(fmt.Sprintf("Record number (1-%d)", a.store.Len()), "")
	if err != nil {
		return core.Record{}, 0, err
	}
	if answer == "" {
		return core.Record{}, 0, errAborted
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return core.Record{}, 0, core.ValidationError{Field: "record number", Value: answer, Message: "not a number"}
	}

	rec, err := a.store.At(n - 1)
	if err != nil {
		return core.Record{}, 0, err
	}
	return rec, n - 1, nil
}

// formField pairs a prompt label with the input field it fills.
type formField struct {
	label string
	value *string
}

// fillForm walks the record form once. Current values come back as
// defaults, so after a rejection only the offending answer needs
// retyping.
func (a *App) fillForm(in *core.RecordInput) error {
	fields := []formField{
		{"ID", &in.ID},
		{"Name", &in.Name},
		{"Surname", &in.Surname},
		{"Country", &in.Country},
		{"Date of birth (YYYY-MM-DD)", &in.DateOfBirth},
		{"Study abroad (yes/no)", &in.StudyAbroad},
		{"GPA", &in.GPA},
		{"Major", &in.Major},
		{"Enrollment date (YYYY-MM-DD)", &in.EnrollmentDate},
		{"Email", &in.Email},
		{"Phone number", &in.PhoneNumber},
	}

	for _, f := range fields {
		v, err := a.prompt(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}
