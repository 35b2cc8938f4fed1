package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/event"
)

type EventUseCaseCfg struct {
	Market    string
	Repo      event.Repo
	Notifiers []event.Notifier
	// Pool runs the notifiers; without it they run inline after commit.
	Pool  *goroutines.Pool
	Clock domain.Clock
}

type impl struct {
	market    string
	repo      event.Repo
	notifiers []event.Notifier
	pool      *goroutines.Pool
	clock     domain.Clock
}

func New(cfg *EventUseCaseCfg) event.UseCase {
	im := &impl{
		market:    cfg.Market,
		repo:      cfg.Repo,
		notifiers: cfg.Notifiers,
		pool:      cfg.Pool,
		clock:     cfg.Clock,
	}
	if im.clock == nil {
		im.clock = time.Now
	}
	return im
}

func (im *impl) Emit(c ctx.Ctx, e *event.Event) error {
	e.Id = uuid.NewString()
	e.Market = im.market
	e.CreatedAt = im.clock()
	if err := im.repo.Insert(c, e); err != nil {
		c.WithFields(log.Fields{"err": err, "type": e.Type}).Error("repo.Insert failed")
		return err
	}
	if len(im.notifiers) > 0 {
		cp := *e
		journal.OnCommit(c, func() {
			im.notify(c, &cp)
		})
	}
	return nil
}

func (im *impl) notify(c ctx.Ctx, e *event.Event) {
	// detached from the request, which may be gone by the time the notifier runs
	nc := ctx.From(context.Background(), c.Logger)
	for _, n := range im.notifiers {
		n := n
		task := func() {
			if err := n.Notify(nc, e); err != nil {
				nc.WithFields(log.Fields{"err": err, "id": e.Id, "type": e.Type}).Warn("notifier.Notify failed")
			}
		}
		if im.pool == nil {
			task()
			continue
		}
		if err := im.pool.Schedule(task); err != nil {
			nc.WithFields(log.Fields{"err": err, "id": e.Id}).Error("pool.Schedule failed")
		}
	}
}

func (im *impl) FindAll(c ctx.Ctx, opts ...event.FindAllOptionsFunc) ([]*event.Event, error) {
	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	return res, nil
}
