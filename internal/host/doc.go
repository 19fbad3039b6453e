// Package host describes the boundary between script declarations and the
// embedding runtime.
//
// The runtime is never implemented here. Registry and ModuleRegistry are
// the registration facade a script uses to announce its members; Reflection
// is the read-only facade tooling uses to inspect the runtime's class
// database. All three are interfaces so that tests and tools can supply
// their own implementations.
package host
