// Package classdb holds the read-only reflection records the host produces
// for its class database, together with Snapshot, an in-memory reflection
// source backed by a dump file.
//
// Records are plain value structs. Nothing in this module mutates a record
// after it has been handed out; Snapshot returns copies of its slices so
// callers cannot reach into its state.
package classdb
