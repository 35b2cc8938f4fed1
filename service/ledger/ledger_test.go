package ledger

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	queryMocks "github.com/x-xyz/market/service/query/mocks"
)

var (
	mockCtx = ctx.Background()
	errMock = errors.New("mock error")
)

type fakeLocker struct {
	locked   int32
	unlocked int32
	err      error
}

func (f *fakeLocker) Lock(c ctx.Ctx, key string) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	atomic.AddInt32(&f.locked, 1)
	return func() { atomic.AddInt32(&f.unlocked, 1) }, nil
}

type ledgerSuite struct {
	suite.Suite
	state []string
}

func (s *ledgerSuite) SetupTest() {
	s.state = nil
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(ledgerSuite))
}

// write appends v and journals its removal.
func (s *ledgerSuite) write(c ctx.Ctx, v string) {
	s.state = append(s.state, v)
	journal.OnRevert(c, func() {
		s.state = s.state[:len(s.state)-1]
	})
}

func (s *ledgerSuite) TestCommit() {
	l := New("official")
	committed := false
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		s.write(c, "a")
		s.write(c, "b")
		journal.OnCommit(c, func() { committed = true })
		s.False(committed)
		return nil
	}))
	s.True(committed)
	s.Equal([]string{"a", "b"}, s.state)
}

func (s *ledgerSuite) TestRevertOnError() {
	l := New("official")
	committed := false
	s.Equal(errMock, l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		s.write(c, "a")
		journal.OnCommit(c, func() { committed = true })
		return errMock
	}))
	s.False(committed)
	s.Empty(s.state)
}

func (s *ledgerSuite) TestRevertOnPanic() {
	l := New("official")
	s.Panics(func() {
		_ = l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
			s.write(c, "a")
			panic("boom")
		})
	})
	s.Empty(s.state)

	// the market lock was released
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error { return nil }))
}

func (s *ledgerSuite) TestFollowUpFailureIsIsolated() {
	l := New("official")
	var failedWith error
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		s.write(c, "sale")
		journal.Then(c, journal.FollowUp{
			Name: "swap",
			Run: func(c ctx.Ctx) error {
				s.write(c, "swap")
				return errMock
			},
			OnFail: func(c ctx.Ctx, err error) {
				failedWith = err
				s.write(c, "swapFailed")
			},
		})
		return nil
	}))
	s.Equal(errMock, failedWith)
	s.Equal([]string{"sale", "swapFailed"}, s.state)
}

func (s *ledgerSuite) TestFollowUpsRunAfterCommitInOrder() {
	l := New("official")
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		journal.Then(c, journal.FollowUp{Name: "first", Run: func(c ctx.Ctx) error {
			s.write(c, "first")
			journal.Then(c, journal.FollowUp{Name: "nested", Run: func(c ctx.Ctx) error {
				s.write(c, "nested")
				return nil
			}})
			return nil
		}})
		journal.Then(c, journal.FollowUp{Name: "second", Run: func(c ctx.Ctx) error {
			s.write(c, "second")
			return nil
		}})
		s.write(c, "call")
		return nil
	}))
	s.Equal([]string{"call", "first", "nested", "second"}, s.state)
}

func (s *ledgerSuite) TestFollowUpsDroppedOnError() {
	l := New("official")
	ran := false
	s.Error(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		journal.Then(c, journal.FollowUp{Name: "swap", Run: func(c ctx.Ctx) error {
			ran = true
			return nil
		}})
		return errMock
	}))
	s.False(ran)
}

func (s *ledgerSuite) TestSerialized() {
	l := New("official")
	var inside, maxInside int32
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Execute(mockCtx, "bid", func(c ctx.Ctx) error {
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, n)
				}
				atomic.AddInt32(&inside, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	s.Equal(int32(1), maxInside)
}

func (s *ledgerSuite) TestLocker() {
	locker := &fakeLocker{}
	l := New("game", WithLocker(locker))
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error { return nil }))
	s.Equal(int32(1), locker.locked)
	s.Equal(int32(1), locker.unlocked)

	locker.err = errMock
	called := false
	s.Equal(errMock, l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		called = true
		return nil
	}))
	s.False(called)
}

func (s *ledgerSuite) TestTransactionRetryStartsClean() {
	q := &queryMocks.Mongo{}
	q.On("RunWithTransaction", mock.Anything, mock.Anything).Return(func(c ctx.Ctx, fn func(ctx.Ctx) error) error {
		// the driver retries once after a transient error
		_ = fn(c)
		return fn(c)
	}).Once()

	l := New("black", WithTransactions(q))
	attempts := 0
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		attempts++
		s.write(c, "a")
		return nil
	}))
	s.Equal(2, attempts)
	s.Equal([]string{"a"}, s.state)
	q.AssertExpectations(s.T())
}

func (s *ledgerSuite) TestPayoutsRunOnceAfterCommit() {
	q := &queryMocks.Mongo{}
	q.On("RunWithTransaction", mock.Anything, mock.Anything).Return(func(c ctx.Ctx, fn func(ctx.Ctx) error) error {
		_ = fn(c)
		return fn(c)
	}).Once()

	l := New("black", WithTransactions(q))
	sent := 0
	s.NoError(l.Execute(mockCtx, "bid", func(c ctx.Ctx) error {
		s.write(c, "bid")
		return journal.Pay(c, journal.Payout{Name: "refund", Run: func(c ctx.Ctx) error {
			sent++
			s.Nil(journal.From(c))
			s.Equal([]string{"bid"}, s.state)
			return nil
		}})
	}))
	s.Equal(1, sent)
	q.AssertExpectations(s.T())
}

func (s *ledgerSuite) TestPayoutsBeforeFollowUps() {
	l := New("official")
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		journal.Then(c, journal.FollowUp{Name: "swap", Run: func(c ctx.Ctx) error {
			s.write(c, "swap")
			return nil
		}})
		s.write(c, "sale")
		return journal.Pay(c, journal.Payout{Name: "seller", Run: func(c ctx.Ctx) error {
			s.state = append(s.state, "paid")
			return nil
		}})
	}))
	s.Equal([]string{"sale", "paid", "swap"}, s.state)
}

func (s *ledgerSuite) TestPayoutsDroppedOnError() {
	l := New("official")
	sent := false
	s.Equal(errMock, l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		_ = journal.Pay(c, journal.Payout{Name: "seller", Run: func(c ctx.Ctx) error {
			sent = true
			return nil
		}})
		return errMock
	}))
	s.False(sent)
}

func (s *ledgerSuite) TestPayoutFailureIsReported() {
	l := New("official")
	var failedWith error
	second := false
	s.NoError(l.Execute(mockCtx, "buy", func(c ctx.Ctx) error {
		s.write(c, "sale")
		_ = journal.Pay(c, journal.Payout{
			Name: "rewards",
			Run:  func(c ctx.Ctx) error { return errMock },
			OnFail: func(c ctx.Ctx, err error) {
				failedWith = err
				s.write(c, "payoutFailed")
			},
		})
		return journal.Pay(c, journal.Payout{Name: "seller", Run: func(c ctx.Ctx) error {
			second = true
			return nil
		}})
	}))
	s.Equal(errMock, failedWith)
	s.True(second)
	s.Equal([]string{"sale", "payoutFailed"}, s.state)
}
