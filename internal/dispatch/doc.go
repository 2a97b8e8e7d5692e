// Package dispatch turns classified gesture events into ordered
// operations on the keyboard state and pointer.
//
// A Dispatcher is long-lived and owns the dispatch targets; an
// Interaction is created per touch, owns one gesture recognizer and
// the key definition under the finger, and dies on release.
//
// The mapping from action to effect follows a press/repeat/release
// split: most actions fire once when the swipe claims a direction,
// Arrow/Scroll/Select/Delete re-fire on each swipe increment, and
// Layer/Delete/HideKeyboard add a release effect. Exactly one release
// path runs per interaction: the recorded swipe direction's release
// effect, or the plain tap release.
package dispatch
