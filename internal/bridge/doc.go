// Package bridge connects to the editor over socket.io and answers its
// completion requests.
//
// The editor emits a "complete" event with a payload of the form
//
//	{"id": "42", "pattern": "player.pos"}
//
// and receives a "completions" event carrying the same id and the matching
// paths:
//
//	{"id": "42", "items": ["player.position"]}
//
// A request without an id is given a random one so replies can still be
// correlated in the logs.
package bridge
