// Package core provides the roster, its CSV codec and the record rules.
//
// This package is the heart of the records manager, containing all domain
// logic independent of the menu layer and the archive. It can be driven by
// the interactive application or by tests without modification.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Record: one student, with required identity fields and optional
//     detail fields. [BuildRecord] is the strict parsing path used at the
//     edit prompts; a record that fails it is never stored.
//   - Store: the in-memory roster, ordered by insertion. Every mutation
//     revalidates the record and the identifier uniqueness invariant.
//   - Codec: [ExportCSV] and [ImportCSV] speak the fixed eleven-column
//     layout in [Header]. The layout has no quoting; values are written
//     and split verbatim on commas.
//   - Diagnostics: imports never fail on content. Every skipped line,
//     defaulted field and renamed identifier is reported as a
//     [Diagnostic] in the [ImportResult].
//
// # Import Forgiveness
//
// The importer takes what it can and accounts for the rest:
//
//  1. Line 1 is always the header and is never imported.
//  2. A line missing ID, Name or Surname is skipped with a diagnostic.
//  3. Unreadable dates fall back to the current date, unreadable grade
//     averages to 0, out-of-range grade averages are clamped.
//  4. Colliding identifiers are resolved by a strategy: skipped, renamed
//     from a generator, or referred back to the user.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each error category has a unique code the user can quote:
//
//   - REC001-REC003: Roster errors (duplicates, positions, empty roster)
//   - VAL001-VAL006: Validation errors (formats, ranges, required fields)
//   - FILE001-FILE004: File errors (size, access, oversized lines)
//   - ARC001-ARC002: Archive errors (locked or unreachable archive)
package core
