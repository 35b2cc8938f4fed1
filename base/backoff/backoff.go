package backoff

import (
	"context"
	"time"
)

// Exponential doubles its wait from start up to limit. It is not safe for
// concurrent use; every retry loop owns one.
type Exponential struct {
	start time.Duration
	limit time.Duration
	next  time.Duration
	tries int
}

func NewExponential(start, limit time.Duration) *Exponential {
	return &Exponential{start: start, limit: limit, next: start}
}

// Tries is the number of completed waits.
func (b *Exponential) Tries() int {
	return b.tries
}

// Next is the duration of the upcoming wait.
func (b *Exponential) Next() time.Duration {
	return b.next
}

// Backoff sleeps for Next or until c is done, whichever comes first.
func (b *Exponential) Backoff(c context.Context) error {
	t := time.NewTimer(b.next)
	defer t.Stop()
	select {
	case <-c.Done():
		return c.Err()
	case <-t.C:
	}
	b.tries++
	b.next *= 2
	if b.limit > 0 && b.next > b.limit {
		b.next = b.limit
	}
	return nil
}

func (b *Exponential) Reset() {
	b.next = b.start
	b.tries = 0
}
