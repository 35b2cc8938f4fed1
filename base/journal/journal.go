// Package journal records how to undo the effects of one ledger call.
//
// Every state write made during a call appends an undo func; on failure the undos run
// in reverse order, on success the commit hooks run in order. Payouts are transfers out
// of the custodian that cannot be taken back; they run once after commit. Follow-ups are
// extra phases that run after the payouts, each under a journal of its own.
package journal

import (
	"github.com/x-xyz/market/base/ctx"
)

type key struct{}

// FollowUp is a phase that runs after the owning call committed. Its failure is
// reverted on its own and handed to OnFail; the owning call stays committed.
type FollowUp struct {
	Name   string
	Run    func(ctx.Ctx) error
	OnFail func(ctx.Ctx, error)
}

// Payout is a transfer out of the custodian. It runs exactly once, after the owning call
// committed and outside any transaction, so a retried or reverted call never sends it.
// A failed payout is handed to OnFail.
type Payout struct {
	Name   string
	Run    func(ctx.Ctx) error
	OnFail func(ctx.Ctx, error)
}

type Journal struct {
	undo      []func()
	commit    []func()
	payouts   []Payout
	followUps []FollowUp
	closed    bool
}

func New() *Journal {
	return &Journal{}
}

// With attaches j to c.
func With(c ctx.Ctx, j *Journal) ctx.Ctx {
	return ctx.WithHidden(c, key{}, j)
}

// From returns the journal attached to c, or nil outside a ledger call.
func From(c ctx.Ctx) *Journal {
	j, _ := c.Value(key{}).(*Journal)
	return j
}

// OnRevert registers an undo. Outside a ledger call it is a no-op.
func OnRevert(c ctx.Ctx, fn func()) {
	if j := From(c); j != nil {
		j.OnRevert(fn)
	}
}

// OnCommit registers a hook run after the call commits. Outside a ledger call fn runs
// immediately.
func OnCommit(c ctx.Ctx, fn func()) {
	if j := From(c); j != nil {
		j.OnCommit(fn)
		return
	}
	fn()
}

// Then schedules a follow-up. Outside a ledger call it runs immediately.
func Then(c ctx.Ctx, f FollowUp) {
	if j := From(c); j != nil {
		j.Then(f)
		return
	}
	if err := f.Run(c); err != nil && f.OnFail != nil {
		f.OnFail(c, err)
	}
}

// Pay schedules a payout. Outside a ledger call it runs immediately and its error is
// returned.
func Pay(c ctx.Ctx, p Payout) error {
	if j := From(c); j != nil {
		j.Pay(p)
		return nil
	}
	return p.Run(c)
}

func (j *Journal) OnRevert(fn func()) {
	j.undo = append(j.undo, fn)
}

func (j *Journal) OnCommit(fn func()) {
	j.commit = append(j.commit, fn)
}

func (j *Journal) Pay(p Payout) {
	j.payouts = append(j.payouts, p)
}

func (j *Journal) Then(f FollowUp) {
	j.followUps = append(j.followUps, f)
}

// Len is the number of pending undos.
func (j *Journal) Len() int {
	return len(j.undo)
}

// Revert undoes every recorded effect, newest first, and drops hooks, payouts and
// follow-ups.
// The journal can be reused afterwards, which the ledger relies on when a driver retries
// the call body.
func (j *Journal) Revert() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.reset()
}

// Commit runs the commit hooks and returns the payouts and follow-ups for the caller to
// drive, payouts first.
func (j *Journal) Commit() ([]Payout, []FollowUp) {
	hooks, payouts, followUps := j.commit, j.payouts, j.followUps
	j.reset()
	j.closed = true
	for _, fn := range hooks {
		fn()
	}
	return payouts, followUps
}

func (j *Journal) Closed() bool {
	return j.closed
}

func (j *Journal) reset() {
	j.undo = nil
	j.commit = nil
	j.payouts = nil
	j.followUps = nil
}
