// Package tasks runs batch jobs over the song book with real-time progress reporting.
//
// # Operations
//
// [Engine] provides:
//
//  1. [Engine.Import] : read ChordPro files (expanded with [ExpandImportPatterns])
//     - Skips files whose normalized BLAKE3 content hash already exists
//     - Optionally appends every imported song to a library
//
//  2. [Engine.BulkExport] : render songs to disk with a worker pool
//     - Per-song txt/md/cho files plus an optional index.csv
//     - Throughput capped by a rate limiter; a manifest.json summarizes the run
//
//  3. [Engine.BulkTranspose] : rewrite stored sources by a number of semitones
//
//  4. [Engine.Snapshot] / [Engine.Restore] : build and load backups
//
//  5. [Engine.Watch] : re-run a callback whenever a file on disk changes
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Sends use select with
// default so a slow or absent reader never blocks the job.
package tasks
