// Package server provides the HTTP routing, middleware and JSON handlers behind `harmony serve`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] patterns ("POST /api/render", "GET /api/songs/{id}"),
// so method filtering and path values come from the standard mux.
//
// # Handlers
//
// [ChordProHandler] exposes the stateless chord tools over raw ChordPro text:
//   - POST /api/render    {text, transpose}   -> {title, artist, key, lines, chords}
//   - POST /api/transpose {text, semitones}   -> {text}
//   - POST /api/locate    {text, offset}      -> {found, chord, start, end}
//   - POST /api/extension {chord, extension}  -> {chord}
//
// [SongsHandler] serves the stored song book: GET /api/songs (q, artist, library, limit) and
// GET /api/songs/{id} (id or sequence number, optional ?transpose=n).
//
// # Observability
//
// Every request is logged by [LoggingMiddleware] and counted by [Metrics]; the registry is exposed on /metrics.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
