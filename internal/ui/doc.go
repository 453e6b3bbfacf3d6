// Package ui implements an interactive terminal song book using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [SongListView] : Browse and filter songs
//  2. [SheetView] : Read a rendered chord sheet, transposing with +/- and saving the offset with s
//  3. [EditorView] : Edit ChordPro source beside a live preview
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The editor preview is debounced: each edit schedules a tick tagged with a sequence number and only the latest tick re-renders.
//
// While editing, the status line names the chord under the cursor and alt+7, alt+9 and alt+1 toggle
// its 7th, 9th and 11th extensions.
package ui
