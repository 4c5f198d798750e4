// Package archive defines the persistence contract for the roster: the
// saved records themselves plus a journal of the operations that shaped
// them. Implementations live in subpackages; the rest of the program
// depends only on the interface.
package archive

import (
	"time"

	"github.com/google/uuid"

	"github.com/iordaniskot/registrar/internal/core"
)

// Kind labels a journal entry with the operation that produced it.
type Kind string

const (
	KindImport Kind = "import"
	KindExport Kind = "export"
	KindReset  Kind = "reset"
	KindSave   Kind = "save"
)

// Operation is one journal entry.
type Operation struct {
	ID      string    // unique entry id
	Kind    Kind      // what ran
	Detail  string    // free-form context, usually a file name
	Records int       // roster or batch size the operation touched
	At      time.Time // when the operation ran
}

// NewOperation stamps a journal entry with a fresh id and the current
// time.
func NewOperation(kind Kind, detail string, records int) Operation {
	return Operation{
		ID:      uuid.New().String(),
		Kind:    kind,
		Detail:  detail,
		Records: records,
		At:      time.Now(),
	}
}

// Archive persists the roster between runs and keeps the operations
// journal. SaveRoster replaces the stored roster wholesale; the roster
// in memory is the source of truth while the program runs.
type Archive interface {
	SaveRoster(records []core.Record) error
	LoadRoster() ([]core.Record, error)
	LogOperation(op Operation) error
	RecentOperations(limit int) ([]Operation, error)
	Close() error
}
