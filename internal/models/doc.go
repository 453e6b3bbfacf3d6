// Package models defines the persistent entities of the harmony song book.
//
//   - [Song] : ChordPro source with derived title, artist and key, a BLAKE3
//     content hash for duplicate detection and a saved transpose offset.
//   - [Library] : a named set list holding song IDs in order.
//
// All entities implement [Model] (ID, timestamps, validation, soft delete)
// and are persisted through implementations of [Repository].
package models
