package application

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/iordaniskot/registrar/internal/archive"
	"github.com/iordaniskot/registrar/internal/core"
	"github.com/iordaniskot/registrar/internal/resolve"
)

/* ----------------------------------------
	ROSTER ACTIONS
---------------------------------------- */

// listRecords renders the roster as a numbered table of listing fields.
func (a *App) listRecords() error {
	rows := a.store.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "The roster is empty.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tName\tSurname\tCountry")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, row.ID, row.Name, row.Surname, row.Country)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("render roster: %w", err)
	}

	fmt.Fprintf(a.out, "%d record(s).\n", len(rows))
	return nil
}

func (a *App) showDetails() error {
	rec, _, err := a.pickRecord()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, rec.Details(time.Now()))
	return nil
}

// addRecord walks the record form, builds the record and adds it to the
// roster. After a rejection the form comes back pre-filled with the
// previous answers, so only the offending field needs retyping.
func (a *App) addRecord() error {
	fmt.Fprintln(a.out, "Leave ID blank to have one assigned.")

	var input core.RecordInput
	for {
		if err := a.fillForm(&input); err != nil {
			return err
		}
		if input.ID == "" {
			input.ID = a.nextFreeID()
			fmt.Fprintf(a.out, "Assigned identifier %s.\n", input.ID)
		}

		rec, err := core.BuildRecord(input)
		if err != nil {
			a.showError(err)
			continue
		}
		if err := a.store.Add(rec); err != nil {
			a.showError(err)
			continue
		}

		fmt.Fprintf(a.out, "Added %s.\n", rec)
		slog.Info("record added", "id", rec.ID)
		return nil
	}
}

func (a *App) editRecord() error {
	rec, idx, err := a.pickRecord()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Editing %s. Press Enter to keep the shown value.\n", rec)

	input := rec.Input()
	for {
		if err := a.fillForm(&input); err != nil {
			return err
		}

		updated, err := core.BuildRecord(input)
		if err != nil {
			a.showError(err)
			continue
		}
		if err := a.store.Replace(idx, updated); err != nil {
			a.showError(err)
			continue
		}

		fmt.Fprintf(a.out, "Updated %s.\n", updated)
		slog.Info("record updated", "id", updated.ID)
		return nil
	}
}

func (a *App) deleteRecord() error {
	rec, idx, err := a.pickRecord()
	if err != nil {
		return err
	}

	yes, err := a.confirm(fmt.Sprintf("Delete %s?", rec))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Kept.")
		return nil
	}

	if err := a.store.Remove(idx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s.\n", rec)
	slog.Info("record deleted", "id", rec.ID)
	return nil
}

// nextFreeID mints identifiers until one is free on the roster.
func (a *App) nextFreeID() string {
	id := a.gen.Next()
	for a.store.IsDuplicate(id, -1) {
		id = a.gen.Next()
	}
	return id
}

// searchBy returns the action for one search field.
func (a *App) searchBy(field core.SearchField) func() error {
	return func() error {
		prefix, err := a.prompt("Prefix", "")
		if err != nil {
			return err
		}

		count := 0
		for rec := range a.store.FindByPrefix(field, prefix) {
			fmt.Fprintln(a.out, rec)
			count++
		}
		if count == 0 {
			fmt.Fprintln(a.out, "No matches.")
			return nil
		}
		fmt.Fprintf(a.out, "%d match(es).\n", count)
		return nil
	}
}

/* ----------------------------------------
	IMPORT / EXPORT
---------------------------------------- */

func (a *App) importReplace() error { return a.runImport(true) }
func (a *App) importAppend() error  { return a.runImport(false) }

// runImport drives one import: pick the file, pick the duplicate
// strategy, parse, then swap or extend the roster. Replacing treats the
// roster as gone, so only the batch itself can collide.
func (a *App) runImport(replace bool) error {
	path, err := a.prompt("CSV file path", "")
	if err != nil {
		return err
	}
	if path == "" {
		return errAborted
	}

	if err := a.checkImportSize(path); err != nil {
		return err
	}

	strategy, err := a.chooseStrategy()
	if err != nil {
		return err
	}

	var existing map[string]struct{}
	if !replace {
		existing = a.store.IDSet()
	}

	res, err := core.ImportFile(path, existing, strategy)
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(a.out, "line %d, %s: %s\n", d.Line, d.Field, d.Reason)
	}

	mode := "append"
	if replace {
		mode = "replace"
		err = a.store.ReplaceAll(res.Records)
	} else {
		err = a.store.Append(res.Records)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d record(s), skipped %d line(s). Roster now holds %d.\n",
		res.Imported, res.Skipped, a.store.Len())

	op := archive.NewOperation(archive.KindImport, fmt.Sprintf("%s (%s)", res.FileName, mode), res.Imported)
	if err := a.arch.LogOperation(op); err != nil {
		return fmt.Errorf("journal import: %w", err)
	}
	return nil
}

// checkImportSize rejects files over the configured limit before any
// parsing starts.
func (a *App) checkImportSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat import: %w", err)
	}
	if info.Size() > a.cfg.Import.MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (limit %d bytes)", info.Size(), a.cfg.Import.MaxFileSize)
	}
	return nil
}

// chooseStrategy asks what to do with duplicate identifiers. Skipping
// is the default.
func (a *App) chooseStrategy() (resolve.Strategy, error) {
	fmt.Fprintln(a.out, "On duplicate identifiers:")
	fmt.Fprintln(a.out, " 1) Skip the line")
	fmt.Fprintln(a.out, " 2) Assign a fresh identifier")
	fmt.Fprintln(a.out, " 3) Ask for each one")

	for {
		answer, err := a.prompt("Choice", "1")
		if err != nil {
			return nil, err
		}
		switch answer {
		case "1":
			return resolve.Skip{}, nil
		case "2":
			return resolve.Auto{Next: a.gen.Next}, nil
		case "3":
			return resolve.Func(a.resolveManually), nil
		}
		fmt.Fprintln(a.out, "Pick 1, 2 or 3.")
	}
}

// resolveManually asks the user to settle one identifier collision.
// When input runs out mid-import the line is skipped.
func (a *App) resolveManually(c resolve.Conflict) resolve.Decision {
	fmt.Fprintf(a.out, "Line %d: identifier %q is already taken (%s).\n", c.Line, c.ID, c.Source)

	id, err := a.prompt("New identifier (blank to skip the line)", "")
	if err != nil || id == "" {
		return resolve.Decision{Skip: true}
	}
	return resolve.Decision{ReplacementID: id}
}

func (a *App) exportRoster() error {
	path, err := a.prompt("Destination path", "")
	if err != nil {
		return err
	}
	if path == "" {
		return errAborted
	}

	records := a.store.Records()
	if err := core.ExportFile(path, records); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d record(s) to %s.\n", len(records), path)

	op := archive.NewOperation(archive.KindExport, filepath.Base(path), len(records))
	if err := a.arch.LogOperation(op); err != nil {
		return fmt.Errorf("journal export: %w", err)
	}
	return nil
}

/* ----------------------------------------
	ARCHIVE ACTIONS
---------------------------------------- */

func (a *App) saveNow() error {
	if err := a.saveRoster("manual"); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Archived %d record(s).\n", a.store.Len())
	return nil
}

func (a *App) showHistory() error {
	ops, err := a.arch.RecentOperations(10)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintln(a.out, "No operations on record.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "When\tOperation\tRecords\tDetail")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", op.At.Format("2006-01-02 15:04"), op.Kind, op.Records, op.Detail)
	}
	return w.Flush()
}

func (a *App) resetRoster() error {
	if a.store.Len() == 0 {
		fmt.Fprintln(a.out, "The roster is already empty.")
		return nil
	}

	n := a.store.Len()
	yes, err := a.confirm(fmt.Sprintf("Discard all %d record(s)?", n))
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Kept.")
		return nil
	}

	if err := a.store.ReplaceAll(nil); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Roster cleared.")

	op := archive.NewOperation(archive.KindReset, "", n)
	if err := a.arch.LogOperation(op); err != nil {
		return fmt.Errorf("journal reset: %w", err)
	}
	slog.Info("roster reset", "dropped", n)
	return nil
}

func (a *App) quitSession() error {
	a.quit = true
	return nil
}
