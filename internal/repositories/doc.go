// Package repositories implements SQLite persistence for songs and libraries.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
//   - [SongRepository] : ChordPro songs with content-hash lookups for duplicate detection
//   - [LibraryRepository] : named set lists and their ordered song membership
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
