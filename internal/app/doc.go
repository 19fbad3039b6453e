// Package app contains the application use cases: loading manifests and
// committing them to a host, answering completions, listing and generating
// typings for a reflection snapshot, and running the editor bridge. It is
// decoupled from the CLI, which only builds a Config and calls into App.
package app
