// Package ledger runs market calls one at a time and all-or-nothing.
package ledger

import (
	"sync"

	"golang.org/x/xerrors"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/keys"
	"github.com/x-xyz/market/service/query"
	"github.com/x-xyz/market/service/redis"
)

var met = metrics.New("ledger")

type Option func(*ledger)

// WithTransactions runs every call inside a mongo transaction as well.
func WithTransactions(q query.Mongo) Option {
	return func(l *ledger) {
		l.mongo = q
	}
}

// WithLocker serializes the market across replicas.
func WithLocker(locker redis.Locker) Option {
	return func(l *ledger) {
		l.locker = locker
	}
}

type ledger struct {
	market string
	mu     sync.Mutex
	mongo  query.Mongo
	locker redis.Locker
}

func New(market string, opts ...Option) domain.Ledger {
	l := &ledger{market: market}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Execute runs fn under the market lock with a fresh journal. On error every journaled
// effect is reverted. On success the commit hooks run, then the payouts are sent, then
// each follow-up runs as its own atomic step while the lock is still held.
func (l *ledger) Execute(c ctx.Ctx, op string, fn func(ctx.Ctx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c = ctx.WithValues(c, map[string]interface{}{
		"market": l.market,
		"op":     op,
	})

	if l.locker != nil {
		unlock, err := l.locker.Lock(c, keys.RedisLuaKey(keys.PfxLedgerLock, l.market))
		if err != nil {
			c.WithField("err", err).Error("locker.Lock failed")
			return err
		}
		defer unlock()
	}

	defer met.BumpTime("execute.time", "market", l.market, "op", op).End()

	j := journal.New()
	if err := l.atomically(journal.With(c, j), j, fn); err != nil {
		met.BumpSum("execute.err", 1, "market", l.market, "op", op)
		c.WithField("err", err).Info("call reverted")
		return err
	}

	l.drive(c, op, j)
	return nil
}

// drive commits j and runs what it scheduled.
func (l *ledger) drive(c ctx.Ctx, op string, j *journal.Journal) {
	payouts, followUps := j.Commit()
	l.runPayouts(c, op, payouts)
	l.runFollowUps(c, op, followUps)
}

// runPayouts sends each payout once, outside any journal or transaction. A failure does
// not stop the others.
func (l *ledger) runPayouts(c ctx.Ctx, op string, payouts []journal.Payout) {
	for _, p := range payouts {
		pc := ctx.WithValue(c, "payout", p.Name)
		err := l.runPayout(pc, p)
		if err == nil {
			continue
		}
		met.BumpSum("payout.err", 1, "market", l.market, "op", op, "payout", p.Name)
		pc.WithFields(log.Fields{"err": err}).Error("payout failed")
		if p.OnFail != nil {
			l.fail(pc, p.OnFail, err)
		}
	}
}

func (l *ledger) runPayout(c ctx.Ctx, p journal.Payout) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xerrors.Errorf("payout %s panicked: %v", p.Name, r)
		}
	}()
	return p.Run(c)
}

func (l *ledger) atomically(c ctx.Ctx, j *journal.Journal, fn func(ctx.Ctx) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			j.Revert()
			panic(r)
		}
	}()

	run := func(tc ctx.Ctx) error {
		// a driver retry starts over from a clean journal
		j.Revert()
		return fn(tc)
	}
	if l.mongo != nil {
		err = l.mongo.RunWithTransaction(c, run)
	} else {
		err = run(c)
	}
	if err != nil {
		j.Revert()
	}
	return err
}

func (l *ledger) runFollowUps(c ctx.Ctx, op string, followUps []journal.FollowUp) {
	for _, f := range followUps {
		fc := ctx.WithValue(c, "followUp", f.Name)
		j := journal.New()
		if err := l.atomically(journal.With(fc, j), j, f.Run); err != nil {
			met.BumpSum("followup.err", 1, "market", l.market, "op", op, "followUp", f.Name)
			fc.WithFields(log.Fields{"err": err}).Warn("follow-up reverted")
			if f.OnFail != nil {
				l.fail(fc, f.OnFail, err)
			}
			continue
		}
		l.drive(fc, op, j)
	}
}

// fail runs the failure handler atomically so what it records is committed as one.
func (l *ledger) fail(c ctx.Ctx, onFail func(ctx.Ctx, error), cause error) {
	j := journal.New()
	err := l.atomically(journal.With(c, j), j, func(fc ctx.Ctx) error {
		onFail(fc, cause)
		return nil
	})
	if err != nil {
		c.WithField("err", err).Error("failure handler reverted")
		return
	}
	l.drive(c, "fail", j)
}
