// Package selection tracks the text selections of an editing session.
//
// Selections use an anchor/extreme model:
//   - Anchor: the position fixed when the selection gesture started
//   - Extreme: the position the gesture has moved to since
//
// The covered range is always [min(anchor, extreme), max(anchor, extreme)),
// so dragging forwards or backwards over the same characters selects the
// same text. A selection whose anchor equals its extreme is inactive.
//
// A Set keeps every selection begun since it was last cleared, but only the
// most recent one (Last) is ever extended or read back by the session.
// Membership queries consider every active selection in the set.
//
//	set := selection.NewSet()
//	set.Begin(0, 0)
//	set.ExtendTo(1, 1)
//	set.IsSelected(0, 1) // true
//	set.IsSelected(1, 1) // false, the end is exclusive
package selection
