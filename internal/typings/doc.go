// Package typings generates Go constants describing the host's class
// database: class, singleton and utility function names, the method names
// of every class, and one typed enum per global constant group.
package typings
