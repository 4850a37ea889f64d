// Package sqlite provides an SQLite-based implementation of the lexai
// persistence ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - QuotaStore: the daily usage ledger (single row)
//   - CredentialStore: the AI API key (key/value)
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.lexai/data/lexai.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Two processes writing the ledger at once is a
// last-write-wins race.
package sqlite
