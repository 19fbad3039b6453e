// Package complete produces editor completions for dotted paths typed
// against a live scope.
//
// A pattern such as "player.stats.he" is split at its last dot. The left
// side ("player.stats") is resolved against the scope and the keys of the
// result that start with the remainder ("he") are returned as full paths
// ("player.stats.health").
//
// The left side is never executed as code. It is parsed as an HCL absolute
// traversal, so attribute access and index access with number or string
// keys (a.b[0]["k"].c) are supported, and every step is a plain key or index
// lookup through an Enumerator. Anything else, including function calls and
// operators, fails to parse and yields no completions.
//
// Completion never fails: a non-string pattern, a path that does not
// resolve, or a scope without keys all produce an empty result.
package complete
