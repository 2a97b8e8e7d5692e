package dispatch

// Notifier receives one-way UI signals from dispatch. Implementations
// must not call back into the dispatcher.
type Notifier interface {
	// HideKeyboard asks the UI to collapse to the trigger key.
	HideKeyboard()

	// LayoutChanged reports that an active layer changed and the key
	// grid must be redrawn.
	LayoutChanged()
}

// NopNotifier ignores all signals. Used by the replay harness and in
// tests.
type NopNotifier struct{}

func (NopNotifier) HideKeyboard()  {}
func (NopNotifier) LayoutChanged() {}
