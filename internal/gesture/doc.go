// Package gesture classifies one continuous pointer interaction on a
// key into discrete events.
//
// A Recognizer lives for exactly one interaction: it is created when a
// pointer touches a key, fed cumulative offset samples while the
// pointer moves, and dropped when the pointer lifts. Two classifiers
// race to claim the interaction: a hold timer (claims it as a press)
// and a distance threshold (claims it as a directional swipe).
// Whichever fires first wins; the other becomes unreachable for the
// rest of the interaction. Free-move events are emitted for every
// sample regardless of the claim, feeding trackpad emulation.
package gesture
