// Package recorder provides an in-memory implementation of the host
// registration facades. It keeps every registration, per script and in call
// order, which makes it the host of choice for tooling that inspects
// declarations without a running engine.
//
// Whether registering the same member name twice is an error is host
// policy. The recorder supports both: AllowDuplicates records every call,
// RejectDuplicates refuses a second member with the same name.
package recorder
