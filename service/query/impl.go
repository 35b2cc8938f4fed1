package query

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/database/mongoclient"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/base/metrics"
	"github.com/x-xyz/market/domain"
)

const (
	queryMaxTime    = 20 * time.Second
	slowThresholdMs = int64(500)
	txnConcurrency  = 10
)

var (
	timeNow = time.Now
	met     = metrics.New("query")
)

type impl struct {
	client       *mongoclient.Client
	checkIndex   bool
	transactions bool
	tokens       chan int
}

func New(client *mongoclient.Client, opts Options) Mongo {
	tokens := make(chan int, txnConcurrency)
	for i := 0; i < txnConcurrency; i++ {
		tokens <- i + 1
	}
	return &impl{
		client:       client,
		checkIndex:   opts.CheckIndex,
		transactions: opts.Transactions,
		tokens:       tokens,
	}
}

func (im *impl) logerr(c ctx.Ctx, msg string, err error) {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1)
	}
	c.WithFields(log.Fields{"err": err}).Error(msg)
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	defer met.BumpTime("time", "func", "insert", "table", string(table)).End()
	defer slowLog(c, string(table), "insert", nil, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":  table,
		"insert": insert,
	})

	if _, err := im.coll(table).InsertOne(c, insert); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		im.logerr(c, "Insert: InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	defer met.BumpTime("time", "func", "findone", "table", string(table)).End()
	defer slowLog(c, string(table), "findone", query, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	if err := im.checkQueryIndex(c, string(table), "find", bson.E{Key: "filter", Value: query}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return err
	}

	res := im.coll(table).FindOne(c, query, options.FindOne().SetMaxTime(queryMaxTime))
	if err := res.Decode(result); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		im.logerr(c, "FindOne: FindOne error", err)
		return err
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	defer met.BumpTime("time", "func", "count", "table", string(table)).End()
	defer slowLog(c, string(table), "count", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	if err := im.checkQueryIndex(c, string(table), "count", bson.E{Key: "query", Value: selector}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return 0, err
	}

	n, err := im.coll(table).CountDocuments(c, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		im.logerr(c, "Count: CountDocuments failed", err)
		return 0, err
	}
	return int(n), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	defer met.BumpTime("time", "func", "upsert", "table", string(table)).End()
	defer slowLog(c, string(table), "upsert", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
		"update":   update,
	})

	if _, err := im.coll(table).ReplaceOne(c, selector, update, options.Replace().SetUpsert(true)); err != nil {
		im.logerr(c, "Upsert: ReplaceOne failed", err)
		return err
	}
	return nil
}

func getSortOption(sortStrings ...string) bson.D {
	res := bson.D{}
	for _, sort := range sortStrings {
		if sort == "" {
			continue
		}
		if sort[0] == '-' {
			res = append(res, bson.E{Key: sort[1:], Value: -1})
		} else {
			res = append(res, bson.E{Key: sort, Value: 1})
		}
	}
	return res
}

func (im *impl) Search(c ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error {
	return im.SearchNSorts(c, table, offset, limit, []string{sort}, query, results)
}

func (im *impl) SearchNSorts(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error {
	defer met.BumpTime("time", "func", "search", "table", string(table)).End()
	defer slowLog(c, string(table), "search", query, sortFields)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table": table,
		"query": query,
	})

	if err := im.checkQueryIndex(c, string(table), "find", bson.E{Key: "filter", Value: query}); err != nil {
		im.logerr(c, "checkQueryIndex failed", err)
		return err
	}

	findOpts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(offset))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	if sortOpt := getSortOption(sortFields...); len(sortOpt) > 0 {
		findOpts.SetSort(sortOpt)
	}
	cursor, err := im.coll(table).Find(c, query, findOpts)
	if err != nil {
		im.logerr(c, "Search: Find failed", err)
		return err
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		im.logerr(c, "Search: cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	defer met.BumpTime("time", "func", "remove", "table", string(table)).End()
	defer slowLog(c, string(table), "remove", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
	})

	res, err := im.coll(table).DeleteOne(c, selector)
	if err != nil {
		im.logerr(c, "Remove: DeleteOne failed", err)
		return err
	} else if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error {
	defer met.BumpTime("time", "func", "update", "table", string(table)).End()
	defer slowLog(c, string(table), "update", selector, nil)()

	o := &patchOp{}
	for _, opt := range ops {
		opt(o)
	}

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
		"update":   update,
	})

	var (
		res     *mongo.UpdateResult
		err     error
		updater = bson.M{"$set": update}
	)
	if o.patchMany {
		res, err = im.coll(table).UpdateMany(c, selector, updater)
	} else {
		res, err = im.coll(table).UpdateOne(c, selector, updater)
	}
	if err != nil {
		im.logerr(c, "Patch: Update failed", err)
		return err
	}
	if res.MatchedCount == 0 && res.ModifiedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error {
	defer met.BumpTime("time", "func", "customupdate", "table", string(table)).End()
	defer slowLog(c, string(table), "customupdate", selector, nil)()

	c = ctx.WithValues(c, map[string]interface{}{
		"table":    table,
		"selector": selector,
		"update":   update,
	})

	res, err := im.coll(table).UpdateOne(c, selector, update, options.Update().SetUpsert(upsert))
	if err != nil {
		im.logerr(c, "CustomPatch: UpdateOne failed", err)
		return err
	}
	if res.MatchedCount == 0 && res.ModifiedCount == 0 && res.UpsertedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Increment(c ctx.Ctx, table domain.Table, selector, result interface{}, field string, inc interface{}) error {
	defer met.BumpTime("time", "func", "increment", "table", string(table)).End()
	defer slowLog(c, string(table), "increment", selector, nil)()

	updater := bson.M{"$inc": bson.M{field: inc}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	res := im.coll(table).FindOneAndUpdate(c, selector, updater, opts)
	if err := res.Decode(result); err != nil {
		im.logerr(c, "Increment: FindOneAndUpdate failed", err)
		return err
	}
	return nil
}

func (im *impl) RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error {
	if !im.transactions || im.checkIndex {
		// explain is not supported inside a transaction
		return fn(c)
	}

	var token int
	select {
	case <-c.Done():
		return c.Err()
	case token = <-im.tokens:
	}
	defer func() { im.tokens <- token }()

	session, err := im.client.StartSession()
	if err != nil {
		im.logerr(c, "RunWithTransaction: StartSession failed", err)
		return err
	}
	defer session.EndSession(c)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	_, err = session.WithTransaction(c, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(ctx.From(sc, c.Logger))
	}, txnOpts)
	return err
}

func slowLog(c ctx.Ctx, table, action string, query interface{}, sort interface{}) func() {
	start := timeNow()

	return func() {
		elapsedMs := time.Since(start).Milliseconds()
		if elapsedMs >= slowThresholdMs {
			met.BumpSum("slowlog", 1, "table", table, "action", action)
			c.WithFields(log.Fields{
				"table":      table,
				"action":     action,
				"startTime":  start.Unix(),
				"durationMs": elapsedMs,
				"query":      query,
				"sort":       sort,
			}).Warn("mongo slowlog")
		}
	}
}

func (im *impl) checkQueryIndex(c ctx.Ctx, table string, action string, query bson.E) error {
	if !im.checkIndex {
		return nil
	}
	// https://docs.mongodb.com/manual/reference/command/explain/
	res := im.client.Database(im.client.DbName).RunCommand(c, bson.D{
		{Key: "explain", Value: bson.D{{Key: action, Value: table}, query}},
		{Key: "verbosity", Value: "queryPlanner"},
	})

	var m bson.M
	if err := res.Decode(&m); err != nil {
		c.WithField("err", err).Warn("checkQueryIndex decode failed")
		met.BumpSum("checkQueryIndex.err", 1)
		return nil
	}

	// the plan layout differs between server versions, so only look for the stage name
	if strings.Contains(fmt.Sprintf("%v", m), "COLLSCAN") {
		c.WithField("query", query).Warn("COLLSCAN")
		return ErrCollScan
	}
	return nil
}
