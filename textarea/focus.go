package textarea

import (
	"context"
	"time"
)

// FocusContext holds the one focused area of a UI. The blink timer asks it
// which area to blink instead of keeping a global.
type FocusContext struct {
	focused *Area
}

func NewFocusContext() *FocusContext { return &FocusContext{} }

func (f *FocusContext) attach(a *Area) {
	a.focus = f
}

// SetFocused focuses a, hiding the caret of the previously focused area.
// A nil a clears focus.
func (f *FocusContext) SetFocused(a *Area) {
	if f.focused == a {
		return
	}
	if f.focused != nil {
		f.focused.caretVisible = false
	}
	f.focused = a
	if a != nil {
		a.focus = f
		a.caretVisible = true
		a.RestartBlink()
	}
}

func (f *FocusContext) Focused() *Area { return f.focused }

// RequestFocus is SetFocused on behalf of a.
func (f *FocusContext) RequestFocus(a *Area) { f.SetFocused(a) }

// Blink toggles the caret of the focused area. It must run on the UI
// goroutine.
func (f *FocusContext) Blink() {
	if f.focused != nil {
		f.focused.BlinkCaret()
	}
}

// RunBlinker ticks every interval until ctx is done, handing a Blink call
// to post each time. post must run the closure on the UI goroutine.
func RunBlinker(ctx context.Context, f *FocusContext, interval time.Duration, post func(func())) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			post(f.Blink)
		}
	}
}

// HasFocus reports whether a is the focused area of its context. Areas
// without a context are always focused.
func (a *Area) HasFocus() bool {
	if a.focus == nil {
		return true
	}
	return a.focus.focused == a
}

// BlinkCaret flips the caret phase, or keeps it on when blinking is off.
func (a *Area) BlinkCaret() {
	if a.noBlink {
		a.blinkOn = true
		return
	}
	a.blinkOn = !a.blinkOn
}

// IsCaretVisible reports whether the caret should be drawn now.
func (a *Area) IsCaretVisible() bool {
	visible := a.caretVisible || a.focus == nil
	return visible && (a.noBlink || a.blinkOn)
}

// RestartBlink shows the caret and starts a new blink period.
func (a *Area) RestartBlink() {
	a.blinkOn = true
	a.blinkEpoch++
}

// BlinkEpoch changes on every RestartBlink; hosts tag blink ticks with it
// and drop ticks from an older period.
func (a *Area) BlinkEpoch() uint64 { return a.blinkEpoch }
