// Package variant defines the host's value type tags and the small integer
// enums (property hints, property usage flags, method flags) that appear in
// both script declarations and reflection records.
package variant
