// Package application drives the interactive terminal session: a menu
// tree over the roster, with prompts for every operation. Input and
// output are plain streams, so a whole session can be scripted.
package application

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/iordaniskot/registrar/internal/archive"
	"github.com/iordaniskot/registrar/internal/config"
	"github.com/iordaniskot/registrar/internal/core"
	"github.com/iordaniskot/registrar/internal/idgen"
)

// App holds everything one session works with.
type App struct {
	store *core.Store
	arch  archive.Archive
	gen   *idgen.Generator
	cfg   *config.Config

	in  *bufio.Reader
	out io.Writer

	current *Menu
	quit    bool
}

// New assembles a session over the given roster and archive.
func New(store *core.Store, arch archive.Archive, gen *idgen.Generator, cfg *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		store: store,
		arch:  arch,
		gen:   gen,
		cfg:   cfg,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run shows menus and executes choices until the user quits or input
// runs out. When configured, the roster is archived on the way out.
func (a *App) Run() error {
	a.current = buildMenuTree(a)
	slog.Info("session started", "records", a.store.Len())

	for !a.quit {
		a.showMenu(a.current)

		n, err := a.readChoice(len(a.current.Items))
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read choice: %w", err)
		}
		if n == 0 {
			continue
		}

		if err := a.dispatch(a.current.Items[n-1]); err != nil {
			switch {
			case errors.Is(err, errAborted):
				// The user backed out of a prompt.
			case errors.Is(err, io.EOF):
				a.quit = true
			default:
				a.showError(err)
			}
		}
	}

	if a.cfg.Archive.SaveOnExit {
		if err := a.saveRoster("exit"); err != nil {
			return fmt.Errorf("save on exit: %w", err)
		}
		fmt.Fprintf(a.out, "Archived %d record(s).\n", a.store.Len())
	}

	slog.Info("session ended", "records", a.store.Len())
	return nil
}

// dispatch descends into a submenu or runs the item's action.
func (a *App) dispatch(item MenuItem) error {
	if item.Submenu != nil {
		a.current = item.Submenu
		return nil
	}
	if item.Action != nil {
		return item.Action()
	}
	return nil
}

func (a *App) showMenu(m *Menu) {
	fmt.Fprintf(a.out, "\n== %s ==\n", m.Title)
	for i, item := range m.Items {
		fmt.Fprintf(a.out, " %d) %s\n", i+1, item.Label)
	}
}

// readChoice reads a menu selection. It returns 0 when the input was
// not a listed number; the caller shows the menu again.
func (a *App) readChoice(max int) (int, error) {
	fmt.Fprint(a.out, "> ")

	line, err := a.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > max {
		fmt.Fprintf(a.out, "Pick a number between 1 and %d.\n", max)
		return 0, nil
	}
	return n, nil
}

// showError renders err for the user. Expected rejections log quietly;
// anything that fell through to the fallback message is an application
// fault and logs loud.
func (a *App) showError(err error) {
	fmt.Fprintln(a.out, core.FormatUserError(err))
	if core.IsUserFacing(err) {
		slog.Debug("action rejected", "err", err)
	} else {
		slog.Error("action failed", "err", err)
	}
}

// saveRoster archives the current roster and journals the save.
func (a *App) saveRoster(detail string) error {
	records := a.store.Records()
	if err := a.arch.SaveRoster(records); err != nil {
		return fmt.Errorf("archive roster: %w", err)
	}

	op := archive.NewOperation(archive.KindSave, detail, len(records))
	if err := a.arch.LogOperation(op); err != nil {
		return fmt.Errorf("journal save: %w", err)
	}

	slog.Info("roster archived", "records", len(records), "detail", detail)
	return nil
}
