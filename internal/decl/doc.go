// Package decl lets a script declare the members the host must wire into
// its object system: signals, exported properties, fields initialized right
// before the ready hook, and script-wide flags (tool mode, editor icon).
//
// Each declaration is built by a decorator. Decorators validate their input
// and hand a normalized description to a Declarer. Two Declarers exist:
//
//   - Table records declarations in call order and hands the whole batch
//     to a host.Registry with Commit.
//   - Forwarder calls the host.Registry immediately, one call per decorator.
//
// Usage errors (an empty member name, an unknown variant type, an evaluator
// that is neither source text nor a function) are returned when the
// decorator is applied. Host rejections are returned unchanged to the
// caller; nothing here retries or suppresses them.
package decl
