package core

import (
	"fmt"
	"iter"
	"strings"
)

// SearchField names a record field the store can search by prefix.
type SearchField string

const (
	SearchID      SearchField = "id"
	SearchName    SearchField = "name"
	SearchSurname SearchField = "surname"
	SearchCountry SearchField = "country"
)

// ParseSearchField maps user input to a SearchField.
func ParseSearchField(s string) (SearchField, error) {
	switch f := SearchField(strings.ToLower(strings.TrimSpace(s))); f {
	case SearchID, SearchName, SearchSurname, SearchCountry:
		return f, nil
	}
	return "", fmt.Errorf("unknown search field %q (use id, name, surname or country)", s)
}

// searchValue returns the record value the field refers to.
func (f SearchField) searchValue(r Record) string {
	switch f {
	case SearchName:
		return r.Name
	case SearchSurname:
		return r.Surname
	case SearchCountry:
		return r.Country
	default:
		return r.ID
	}
}

// Store holds the roster in memory, ordered by insertion. Positions are
// 0-based and shift on removal. It is not safe for concurrent use; the
// application around it is single-threaded.
type Store struct {
	records []Record
}

// NewStore returns an empty roster.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of records in the roster.
func (s *Store) Len() int {
	return len(s.records)
}

// At returns the record at position i.
func (s *Store) At(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, fmt.Errorf("position %d: %w", i, ErrIndexOutOfRange)
	}
	return s.records[i], nil
}

// Add appends a record to the roster. The record must be valid and its
// identifier free.
func (s *Store) Add(rec Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}
	if s.IsDuplicate(rec.ID, -1) {
		return fmt.Errorf("record %q: %w", rec.ID, ErrDuplicateIdentifier)
	}
	s.records = append(s.records, rec)
	return nil
}

// Replace swaps the record at position i for rec. The replacement may
// keep the old identifier or bring a new one, as long as no other
// record holds it.
func (s *Store) Replace(i int, rec Record) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("position %d: %w", i, ErrIndexOutOfRange)
	}
	if err := validateRecord(rec); err != nil {
		return err
	}
	if s.IsDuplicate(rec.ID, i) {
		return fmt.Errorf("record %q: %w", rec.ID, ErrDuplicateIdentifier)
	}
	s.records[i] = rec
	return nil
}

// Remove deletes the record at position i, preserving the order of the
// remaining records.
func (s *Store) Remove(i int) error {
	if i < 0 || i >= len(s.records) {
		return fmt.Errorf("position %d: %w", i, ErrIndexOutOfRange)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// IsDuplicate reports whether id is already taken by a record other than
// the one at position excluding. Pass a negative position when adding,
// so every record counts.
func (s *Store) IsDuplicate(id string, excluding int) bool {
	for i, r := range s.records {
		if i == excluding {
			continue
		}
		if r.ID == id {
			return true
		}
	}
	return false
}

// FindByPrefix returns a lazy sequence of the records whose field value
// starts with prefix, compared case-insensitively. An empty prefix
// matches every record. The sequence reads the store at iteration time,
// so it can be ranged over more than once and reflects mutations made
// in between.
func (s *Store) FindByPrefix(field SearchField, prefix string) iter.Seq[Record] {
	p := strings.ToLower(prefix)
	return func(yield func(Record) bool) {
		for _, r := range s.records {
			if !strings.HasPrefix(strings.ToLower(field.searchValue(r)), p) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a copy of the roster in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Rows returns the listing projection of the roster, recomputed from
// the records on every call.
func (s *Store) Rows() []Row {
	rows := make([]Row, len(s.records))
	for i, r := range s.records {
		rows[i] = r.Row()
	}
	return rows
}

// IDSet returns the set of identifiers currently in the roster.
func (s *Store) IDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		set[r.ID] = struct{}{}
	}
	return set
}

// ReplaceAll swaps the whole roster for recs, as an import in replace
// mode does. The batch must be internally consistent; on error the
// roster is left untouched.
func (s *Store) ReplaceAll(recs []Record) error {
	if err := checkBatch(recs, nil); err != nil {
		return err
	}
	s.records = make([]Record, len(recs))
	copy(s.records, recs)
	return nil
}

// Append adds recs to the roster in order, as an import in append mode
// does. The batch must be valid against the current roster; on error
// the roster is left untouched.
func (s *Store) Append(recs []Record) error {
	if err := checkBatch(recs, s.IDSet()); err != nil {
		return err
	}
	s.records = append(s.records, recs...)
	return nil
}

// checkBatch validates every record in recs and rejects identifiers
// that repeat within the batch or collide with taken.
func checkBatch(recs []Record, taken map[string]struct{}) error {
	seen := make(map[string]struct{}, len(recs))
	for i, rec := range recs {
		if err := validateRecord(rec); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, ok := seen[rec.ID]; ok {
			return fmt.Errorf("record %d (%q): %w", i+1, rec.ID, ErrDuplicateIdentifier)
		}
		if _, ok := taken[rec.ID]; ok {
			return fmt.Errorf("record %d (%q): %w", i+1, rec.ID, ErrDuplicateIdentifier)
		}
		seen[rec.ID] = struct{}{}
	}
	return nil
}
