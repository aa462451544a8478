// Package eclipse detects geometric eclipses and counts them.
//
// An eclipse here is a proxy condition, not an occlusion test: the moon is
// closer to the sun than its planet is, and within a fixed pixel distance of
// the planet. [Tracker] debounces the condition so one alignment is counted
// once however many frames it stays true.
package eclipse
