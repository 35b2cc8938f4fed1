package query

/*
	Package query wraps https://github.com/mongodb/mongo-go-driver for the market
	repositories. Read the testcases for usage of each method.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is error for unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

type PatchOp func(*patchOp)

// WithPatchMany patches every matching document instead of the first.
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

type Options struct {
	// CheckIndex rejects queries that would scan a whole collection.
	CheckIndex bool `mapstructure:"checkIndex"`
	// Transactions needs a replica set.
	Transactions bool `mapstructure:"transactions"`
}

// Mongo abstracts the mongo layer.
type Mongo interface {
	Insert(c ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne returns ErrNotFound when nothing matches.
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error)

	// Upsert replaces the matching document or inserts update.
	Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by `sort`, e.g. "createdAt" ascending or "-createdAt" descending. An
	// empty sort leaves the order to mongo.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// SearchNSorts sorts by several fields; match the order of compound indexes.
	SearchNSorts(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove returns ErrNotFound if selector matches nothing.
	Remove(c ctx.Ctx, table domain.Table, selector interface{}) error

	// Patch sets the fields of update on the matching document and returns ErrNotFound
	// if selector matches nothing.
	Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// CustomPatch runs a raw update document.
	CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// Increment adds inc to field, inserting the document first if needed, and decodes
	// the updated document into result.
	Increment(c ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error

	// RunWithTransaction runs fn in a session transaction when transactions are enabled.
	// The driver may run fn again on transient errors.
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}

// Compensate registers fn as the undo of a write made through c. Inside a transaction
// the abort discards the write already, so fn is dropped.
func Compensate(c ctx.Ctx, fn func()) {
	if mongo.SessionFromContext(c) != nil {
		return
	}
	journal.OnRevert(c, fn)
}

type Sequence struct {
	Value int64 `bson:"value"`
}

// NextSequence reserves the next value of the named counter, starting at 0.
func NextSequence(c ctx.Ctx, q Mongo, name string) (uint64, error) {
	seq := Sequence{}
	sel := bson.M{"_id": name}
	if err := q.Increment(c, domain.TableSequences, sel, &seq, "value", 1); err != nil {
		return 0, err
	}
	Compensate(c, func() {
		if err := q.Increment(c, domain.TableSequences, sel, &seq, "value", -1); err != nil {
			c.WithFields(log.Fields{"err": err, "sequence": name}).Error("failed to release sequence")
		}
	})
	return uint64(seq.Value - 1), nil
}
