package dropdown

// FocusGuard tracks a single deferred refocus. At most one refocus is pending
// at a time; each scheduled refocus gets a fresh token so that a cancelled or
// superseded one is recognised when it finally fires.
type FocusGuard struct {
	pending bool
	token   uint64
}

// Schedule reserves a refocus. It returns ok=false when one is already pending.
func (g *FocusGuard) Schedule() (token uint64, ok bool) {
	if g.pending {
		return 0, false
	}
	g.token++
	g.pending = true
	return g.token, true
}

// Fire consumes the pending refocus if token is the current one.
func (g *FocusGuard) Fire(token uint64) bool {
	if !g.pending || token != g.token {
		return false
	}
	g.pending = false
	return true
}

// Cancel drops any pending refocus.
func (g *FocusGuard) Cancel() {
	g.pending = false
}

// Pending reports whether a refocus is scheduled.
func (g *FocusGuard) Pending() bool {
	return g.pending
}
