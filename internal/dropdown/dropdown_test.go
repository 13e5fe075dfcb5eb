package dropdown

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ruminaider/listfilter/internal/query"
	"github.com/ruminaider/listfilter/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func items() []selection.Item {
	return []selection.Item{
		{Code: "A", Label: "Active"},
		{Code: "B", Label: "Blocked"},
		{Code: "C", Label: "Closed"},
	}
}

// recorder captures callback invocations.
type recorder struct {
	calls [][]string
	ret   bool
	err   error
}

func (r *recorder) onSelect(codes []string) (bool, error) {
	r.calls = append(r.calls, codes)
	return r.ret, r.err
}

func newController(t *testing.T, v Variant, initial []string, rec *recorder) *Controller {
	t.Helper()
	opts := Options{Variant: v, Logger: quiet}
	if rec != nil {
		opts.OnSelect = rec.onSelect
	}
	return New(items(), initial, opts)
}

func dispatch(c *Controller, g Gesture) Outcome {
	return c.Dispatch(Event{Gesture: g})
}

func click(c *Controller, code string) Outcome {
	return c.Dispatch(Event{Gesture: GestureItem, Code: code})
}

func TestOpenAndReopen(t *testing.T) {
	c := newController(t, VariantButtons, nil, nil)
	assert.Equal(t, Closed, c.State())

	out := dispatch(c, GestureOpen)
	assert.Equal(t, Closed, out.From)
	assert.Equal(t, Open, out.To)
	assert.False(t, out.Focus)

	out = dispatch(c, GestureOpen)
	assert.Equal(t, Open, out.To)
	assert.Zero(t, out.Refocus)
}

func TestItemClickIgnoredWhileClosed(t *testing.T) {
	c := newController(t, VariantButtons, []string{"A"}, nil)
	out := click(c, "B")

	assert.Equal(t, Closed, out.To)
	assert.Equal(t, []string{"A"}, c.PendingCodes())
	assert.Equal(t, []string{"A"}, c.CommittedCodes())
}

func TestButtonsNeverOpenTheWidget(t *testing.T) {
	for _, g := range []Gesture{GestureSelectAll, GestureSelectNone, GestureConfirm, GestureCancel, GestureDismiss, GestureBlur} {
		rec := &recorder{ret: true}
		c := newController(t, VariantButtons, []string{"A"}, rec)
		out := dispatch(c, g)
		assert.Equal(t, Closed, out.To, "gesture %s", g)
		assert.Empty(t, rec.calls, "gesture %s", g)
		assert.Equal(t, []string{"A"}, c.PendingCodes())
	}
}

func TestScenarioAllSelected(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantButtons, []string{"A", "B", "C"}, rec)

	dispatch(c, GestureOpen)
	out := dispatch(c, GestureConfirm)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"A", "B", "C"}, rec.calls[0])
	assert.True(t, out.Committed)
	assert.True(t, out.Navigate)
	assert.Equal(t, Closed, c.State())

	target := query.Encode(out.Codes, c.Total(), "?o=name", "?o=name&status__isnull=True", "status__in")
	assert.Equal(t, "?o=name", target.Query)
}

func TestScenarioNoneSelected(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantButtons, []string{"A", "B", "C"}, rec)

	dispatch(c, GestureOpen)
	dispatch(c, GestureSelectNone)
	assert.Equal(t, selection.FillEmpty, c.Fill())
	out := dispatch(c, GestureConfirm)

	require.Len(t, rec.calls, 1)
	assert.Empty(t, rec.calls[0])
	assert.Empty(t, c.CommittedCodes())

	noneQuery := "?status__isnull=True"
	target := query.Encode(out.Codes, c.Total(), "?", noneQuery, "status__in")
	assert.Equal(t, noneQuery, target.Query)
}

func TestScenarioCloseWithoutChange(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantButtons, []string{"B"}, rec)
	before := c.CommittedCodes()

	dispatch(c, GestureOpen)
	click(c, "A")
	click(c, "A")
	out := dispatch(c, GestureCancel)

	assert.True(t, out.Closed())
	assert.False(t, out.Committed)
	assert.Empty(t, rec.calls)
	assert.Equal(t, before, c.CommittedCodes())
}

func TestCancelRevertsPendingChanges(t *testing.T) {
	c := newController(t, VariantButtons, []string{"B"}, nil)

	dispatch(c, GestureOpen)
	click(c, "A")
	dispatch(c, GestureSelectAll)
	assert.True(t, c.Dirty())
	dispatch(c, GestureCancel)

	assert.Equal(t, []string{"B"}, c.PendingCodes())
	assert.Equal(t, []string{"B"}, c.CommittedCodes())
	assert.False(t, c.Dirty())
}

func TestConfirmCommitsPending(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantButtons, nil, rec)

	dispatch(c, GestureOpen)
	click(c, "C")
	click(c, "A")
	out := dispatch(c, GestureConfirm)

	assert.Equal(t, []string{"A", "C"}, out.Codes)
	assert.Equal(t, []string{"A", "C"}, rec.calls[0])
	assert.Equal(t, out.Codes, c.PendingCodes())
}

func TestCallbackFalseStillCloses(t *testing.T) {
	rec := &recorder{ret: false}
	c := newController(t, VariantButtons, nil, rec)

	dispatch(c, GestureOpen)
	click(c, "A")
	out := dispatch(c, GestureConfirm)

	assert.True(t, out.Closed())
	assert.True(t, out.Committed)
	assert.False(t, out.Navigate)
	assert.Equal(t, []string{"A"}, c.CommittedCodes())
}

func TestCallbackErrorBlocksNavigation(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{ret: true, err: boom}
	c := newController(t, VariantButtons, nil, rec)

	dispatch(c, GestureOpen)
	out := dispatch(c, GestureConfirm)

	assert.True(t, out.Closed())
	assert.False(t, out.Navigate)
	assert.ErrorIs(t, out.Err, boom)
}

func TestNilCallbackDoesNotNavigate(t *testing.T) {
	c := newController(t, VariantButtons, nil, nil)
	dispatch(c, GestureOpen)
	out := dispatch(c, GestureConfirm)
	assert.True(t, out.Committed)
	assert.False(t, out.Navigate)
}

func TestUnknownItemCodeIsIgnored(t *testing.T) {
	c := newController(t, VariantButtons, []string{"A"}, nil)
	dispatch(c, GestureOpen)
	out := click(c, "ZZZ")

	assert.Equal(t, Open, out.To)
	assert.Equal(t, []string{"A"}, c.PendingCodes())
	assert.False(t, c.Dirty())
}

func TestDismiss_ButtonsVariantReverts(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantButtons, nil, rec)

	dispatch(c, GestureOpen)
	click(c, "A")
	out := dispatch(c, GestureDismiss)

	assert.True(t, out.Closed())
	assert.Empty(t, rec.calls)
	assert.Empty(t, c.CommittedCodes())
}

func TestDismiss_ClickToCloseCommitsWhenDirty(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantClickToClose, nil, rec)

	dispatch(c, GestureOpen)
	click(c, "B")
	out := dispatch(c, GestureDismiss)

	assert.True(t, out.Committed)
	assert.True(t, out.Navigate)
	assert.Equal(t, [][]string{{"B"}}, rec.calls)
}

func TestDismiss_ClickToCloseRevertsWhenClean(t *testing.T) {
	rec := &recorder{ret: true}
	c := newController(t, VariantClickToClose, []string{"A"}, rec)

	dispatch(c, GestureOpen)
	click(c, "B")
	click(c, "B")
	out := dispatch(c, GestureDismiss)

	assert.True(t, out.Closed())
	assert.False(t, out.Committed)
	assert.Empty(t, rec.calls)
}

func TestBlur_NonInputVariantDismisses(t *testing.T) {
	c := newController(t, VariantButtons, nil, nil)
	dispatch(c, GestureOpen)
	out := dispatch(c, GestureBlur)
	assert.True(t, out.Closed())
	assert.Zero(t, out.Refocus)
}

func TestInputVariant_OpenRequestsFocus(t *testing.T) {
	c := newController(t, VariantInput, nil, nil)
	out := dispatch(c, GestureOpen)
	assert.True(t, out.Focus)
}

func TestInputVariant_RepeatedBlurSchedulesOneRefocus(t *testing.T) {
	c := newController(t, VariantInput, nil, nil)
	dispatch(c, GestureOpen)

	first := dispatch(c, GestureBlur)
	require.NotZero(t, first.Refocus)
	assert.Equal(t, Open, first.To)

	for i := 0; i < 5; i++ {
		out := dispatch(c, GestureBlur)
		assert.Zero(t, out.Refocus, "blur %d scheduled a second refocus", i)
	}
	// Clicking the trigger while open is guarded the same way.
	assert.Zero(t, dispatch(c, GestureOpen).Refocus)
	assert.True(t, c.RefocusPending())

	assert.True(t, c.Refocus(first.Refocus))
	assert.False(t, c.RefocusPending())
	assert.False(t, c.Refocus(first.Refocus), "token is single-shot")

	next := dispatch(c, GestureBlur)
	assert.NotZero(t, next.Refocus)
	assert.NotEqual(t, first.Refocus, next.Refocus)
}

func TestInputVariant_CloseCancelsPendingRefocus(t *testing.T) {
	c := newController(t, VariantInput, nil, nil)
	dispatch(c, GestureOpen)
	out := dispatch(c, GestureBlur)
	require.NotZero(t, out.Refocus)

	dispatch(c, GestureCancel)
	assert.False(t, c.RefocusPending())
	assert.False(t, c.Refocus(out.Refocus))

	// A blur caused by the close itself arrives while closed and is ignored.
	after := dispatch(c, GestureBlur)
	assert.Equal(t, Closed, after.To)
	assert.Zero(t, after.Refocus)
}

func TestRelease(t *testing.T) {
	c := newController(t, VariantInput, nil, nil)
	dispatch(c, GestureOpen)
	out := dispatch(c, GestureBlur)
	c.Release()
	assert.False(t, c.Refocus(out.Refocus))
}

func TestFillRecomputedAfterEveryMutation(t *testing.T) {
	c := newController(t, VariantButtons, []string{"A", "B", "C"}, &recorder{ret: true})
	assert.Equal(t, selection.FillFull, c.Fill())

	dispatch(c, GestureOpen)
	click(c, "A")
	assert.Equal(t, selection.FillPartial, c.Fill())

	dispatch(c, GestureSelectNone)
	assert.Equal(t, selection.FillEmpty, c.Fill())

	dispatch(c, GestureSelectAll)
	assert.Equal(t, selection.FillFull, c.Fill())

	dispatch(c, GestureSelectNone)
	dispatch(c, GestureCancel)
	assert.Equal(t, selection.FillFull, c.Fill(), "fill follows committed after cancel")

	dispatch(c, GestureOpen)
	dispatch(c, GestureSelectNone)
	dispatch(c, GestureConfirm)
	assert.Equal(t, selection.FillEmpty, c.Fill())
}

func TestSelectedFollowsMode(t *testing.T) {
	c := newController(t, VariantButtons, []string{"A"}, nil)
	dispatch(c, GestureOpen)
	click(c, "B")

	assert.True(t, c.Selected("B"))
	assert.Equal(t, 2, c.Count())

	dispatch(c, GestureCancel)
	assert.False(t, c.Selected("B"))
	assert.Equal(t, 1, c.Count())
}

func TestInstancesAreIndependent(t *testing.T) {
	a := newController(t, VariantButtons, nil, nil)
	b := newController(t, VariantButtons, nil, nil)

	dispatch(a, GestureOpen)
	click(a, "A")

	assert.Equal(t, Closed, b.State())
	assert.Empty(t, b.PendingCodes())
}

func TestParseVariant(t *testing.T) {
	tests := map[string]Variant{
		"":        VariantButtons,
		"buttons": VariantButtons,
		"click":   VariantClickToClose,
		"input":   VariantInput,
	}
	for in, want := range tests {
		got, err := ParseVariant(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseVariant("dropdown")
	assert.Error(t, err)
}

func TestFocusGuard(t *testing.T) {
	var g FocusGuard
	tok, ok := g.Schedule()
	require.True(t, ok)
	_, ok = g.Schedule()
	assert.False(t, ok)

	g.Cancel()
	assert.False(t, g.Fire(tok))

	tok2, ok := g.Schedule()
	require.True(t, ok)
	assert.False(t, g.Fire(tok), "cancelled token must not fire")
	assert.True(t, g.Fire(tok2))
	assert.False(t, g.Pending())
}
