// Package facade provides name-scoped and type-scoped logger handles over a
// pluggable backend.
//
// Application code asks a Factory for a Handle and writes leveled messages
// through it; the Backend decides formatting, thresholds and destinations.
// Two handle variants exist:
//   - plain handles report the immediate caller of the logging method,
//   - context-aware handles walk the stack on every call and report the
//     first frame outside the facade and any registered wrapper packages.
//
// The facade caches nothing and holds no mutable state besides the
// process-wide default factory used by GetLogger and friends.
package facade
