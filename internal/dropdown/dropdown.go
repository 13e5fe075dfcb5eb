// Package dropdown implements the interaction state machine of a multi-select
// dropdown filter. It has no rendering: a UI layer turns user input into
// Events, feeds them to Controller.Dispatch and acts on the returned Outcome.
package dropdown

import (
	"fmt"
	"log/slog"

	"github.com/ruminaider/listfilter/internal/selection"
)

// State is the open/closed mode of the widget.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Gesture is a user action aimed at the widget.
type Gesture int

const (
	GestureOpen       Gesture = iota // activate the trigger
	GestureItem                      // click an item row
	GestureSelectAll                 // "All" button
	GestureSelectNone                // "None" button
	GestureConfirm                   // "OK" button, or click-to-close
	GestureCancel                    // "Cancel" button
	GestureDismiss                   // interaction outside the widget
	GestureBlur                      // the trigger lost focus
)

var gestureNames = map[Gesture]string{
	GestureOpen:       "open",
	GestureItem:       "item",
	GestureSelectAll:  "select-all",
	GestureSelectNone: "select-none",
	GestureConfirm:    "confirm",
	GestureCancel:     "cancel",
	GestureDismiss:    "dismiss",
	GestureBlur:       "blur",
}

func (g Gesture) String() string {
	if name, ok := gestureNames[g]; ok {
		return name
	}
	return "unknown"
}

// Event is one gesture. Code is only used by GestureItem.
type Event struct {
	Gesture Gesture
	Code    string
}

// Variant selects how the widget is closed and focused.
type Variant int

const (
	// VariantButtons has explicit All/None and Cancel/OK buttons.
	VariantButtons Variant = iota
	// VariantClickToClose has no OK/Cancel: closing confirms if anything
	// changed and reverts otherwise.
	VariantClickToClose
	// VariantInput uses a disabled text input as trigger and keeps focus
	// trapped on it while open.
	VariantInput
)

// ParseVariant maps a config or flag value to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "buttons":
		return VariantButtons, nil
	case "click":
		return VariantClickToClose, nil
	case "input":
		return VariantInput, nil
	}
	return VariantButtons, fmt.Errorf("unknown dropdown variant %q", s)
}

// SelectFunc is called once per confirm with the committed codes in display
// order. The widget closes regardless of the result; navigation only happens
// when it returns true and a nil error.
type SelectFunc func(codes []string) (bool, error)

// Options configures a Controller.
type Options struct {
	Variant  Variant
	OnSelect SelectFunc
	Logger   *slog.Logger
}

// Outcome describes what a dispatched event did.
type Outcome struct {
	From, To State

	// Committed is set when the event closed the widget through a confirm.
	Committed bool
	// Codes holds the committed codes when Committed is set.
	Codes []string
	// Navigate reports that the host callback approved navigation.
	Navigate bool
	// Err is the callback error, if any.
	Err error

	// Focus asks the UI to focus the trigger right away.
	Focus bool
	// Refocus is a non-zero token when a deferred refocus was scheduled. The
	// UI must call Controller.Refocus with it from a later turn of its loop.
	Refocus uint64
}

// Closed reports whether the event moved the widget from Open to Closed.
func (o Outcome) Closed() bool {
	return o.From == Open && o.To == Closed
}

type handler func(c *Controller, ev Event, out *Outcome)

// transitions is the gesture dispatch table. Any (state, gesture) pair that is
// missing is a no-op, which covers item clicks while closed, re-opening while
// open in non-input variants and every button while closed.
var transitions = map[State]map[Gesture]handler{
	Closed: {
		GestureOpen: (*Controller).open,
	},
	Open: {
		GestureOpen:       (*Controller).reopen,
		GestureItem:       (*Controller).item,
		GestureSelectAll:  (*Controller).selectAll,
		GestureSelectNone: (*Controller).selectNone,
		GestureConfirm:    (*Controller).confirm,
		GestureCancel:     (*Controller).cancel,
		GestureDismiss:    (*Controller).dismiss,
		GestureBlur:       (*Controller).blur,
	},
}

// Controller is one dropdown instance. All of its state is private to it.
type Controller struct {
	state   State
	model   *selection.Model
	variant Variant
	fill    selection.Fill
	focus   FocusGuard

	onSelect SelectFunc
	logger   *slog.Logger
}

// New creates a closed Controller for items with the initial committed codes.
func New(items []selection.Item, initial []string, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		model:    selection.New(items, initial),
		variant:  opts.Variant,
		onSelect: opts.OnSelect,
		logger:   logger,
	}
	c.refill()
	return c
}

// Dispatch applies ev and reports what happened.
func (c *Controller) Dispatch(ev Event) Outcome {
	out := Outcome{From: c.state, To: c.state}
	if h, ok := transitions[c.state][ev.Gesture]; ok {
		h(c, ev, &out)
	} else {
		c.logger.Debug("dropdown gesture ignored", "gesture", ev.Gesture, "state", c.state)
	}
	out.To = c.state
	return out
}

// Refocus consumes a deferred refocus. It returns true when the UI should
// focus the trigger now.
func (c *Controller) Refocus(token uint64) bool {
	return c.focus.Fire(token) && c.state == Open
}

// Release cancels pending deferred work. Call it when the widget is torn down.
func (c *Controller) Release() {
	c.focus.Cancel()
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Variant returns the configured variant.
func (c *Controller) Variant() Variant { return c.variant }

// Fill returns the last computed fill state.
func (c *Controller) Fill() selection.Fill { return c.fill }

// Dirty reports whether the open session has unconfirmed changes.
func (c *Controller) Dirty() bool { return c.state == Open && c.model.Dirty() }

// RefocusPending reports whether a deferred refocus is scheduled.
func (c *Controller) RefocusPending() bool { return c.focus.Pending() }

// Items returns the items in display order.
func (c *Controller) Items() []selection.Item { return c.model.Items() }

// Selected reports whether code is selected in the current mode: pending while
// open, committed while closed.
func (c *Controller) Selected(code string) bool {
	e, ok := c.model.Entry(code)
	if !ok {
		return false
	}
	if c.state == Open {
		return e.Pending
	}
	return e.Committed
}

// CommittedCodes returns the committed codes in display order.
func (c *Controller) CommittedCodes() []string { return c.model.CommittedCodes() }

// PendingCodes returns the pending codes in display order.
func (c *Controller) PendingCodes() []string { return c.model.PendingCodes() }

// Count returns the number of selected items in the current mode.
func (c *Controller) Count() int { return c.model.Count(c.state == Open) }

// Total returns the number of items.
func (c *Controller) Total() int { return c.model.Len() }

func (c *Controller) refill() {
	c.fill = c.model.Fill(c.state == Open)
}

func (c *Controller) open(_ Event, out *Outcome) {
	c.state = Open
	c.refill()
	out.Focus = c.variant == VariantInput
}

func (c *Controller) reopen(_ Event, out *Outcome) {
	if c.variant == VariantInput {
		c.scheduleRefocus(out)
	}
}

func (c *Controller) item(ev Event, _ *Outcome) {
	if err := c.model.Toggle(ev.Code); err != nil {
		c.logger.Warn("dropdown item click ignored", "err", err)
		return
	}
	c.refill()
}

func (c *Controller) selectAll(_ Event, _ *Outcome) {
	c.model.SetAll(true)
	c.refill()
}

func (c *Controller) selectNone(_ Event, _ *Outcome) {
	c.model.SetAll(false)
	c.refill()
}

func (c *Controller) confirm(_ Event, out *Outcome) {
	c.model.Commit()
	c.close()

	out.Committed = true
	out.Codes = c.model.CommittedCodes()
	if c.onSelect == nil {
		return
	}
	ok, err := c.onSelect(out.Codes)
	if err != nil {
		c.logger.Error("dropdown select callback failed", "codes", out.Codes, "err", err)
		out.Err = err
		return
	}
	out.Navigate = ok
}

func (c *Controller) cancel(_ Event, _ *Outcome) {
	c.model.Revert()
	c.close()
}

func (c *Controller) dismiss(ev Event, out *Outcome) {
	if c.variant == VariantClickToClose && c.model.Dirty() {
		c.confirm(ev, out)
		return
	}
	c.cancel(ev, out)
}

func (c *Controller) blur(ev Event, out *Outcome) {
	if c.variant != VariantInput {
		c.dismiss(ev, out)
		return
	}
	c.scheduleRefocus(out)
}

func (c *Controller) scheduleRefocus(out *Outcome) {
	if token, ok := c.focus.Schedule(); ok {
		out.Refocus = token
	}
}

func (c *Controller) close() {
	c.state = Closed
	c.focus.Cancel()
	c.refill()
}
