package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/database/mongoclient"
	"github.com/x-xyz/market/base/journal"
	"github.com/x-xyz/market/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

type dummy struct {
	Dummy  string `bson:"dummy"`
	Update string `bson:"updatekey"`
}

// querySuite needs a running mongo, e.g.
// MARKET_TEST_MONGO_URI=mongodb://localhost:27017 go test ./service/query/...
type querySuite struct {
	suite.Suite
	im *impl
}

func (q *querySuite) SetupSuite() {
	uri := os.Getenv("MARKET_TEST_MONGO_URI")
	if uri == "" {
		q.T().Skip("MARKET_TEST_MONGO_URI not set")
	}
	client, err := mongoclient.ConnectMongoClient(mongoclient.Config{
		URI:                uri,
		AuthDBName:         "admin",
		DBName:             dbName,
		PoolSizeMultiplier: 1,
	})
	q.Require().NoError(err)
	q.im = New(client, Options{}).(*impl)
}

func (q *querySuite) SetupTest() {
	q.Require().NoError(q.im.coll(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestFindOne() {
	q.Require().NoError(q.im.Upsert(mockCTX, mockTable, bson.M{"dummy": "a"}, dummy{"a", "b"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &res))
	q.Equal(dummy{"a", "b"}, res)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "missing"}, &res))
}

func (q *querySuite) TestInsertDuplicateKey() {
	_, err := q.im.coll(mockTable).Indexes().CreateOne(mockCTX, mongo.IndexModel{
		Keys:    bson.D{{Key: "dummy", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	q.Require().NoError(err)

	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", "1"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{"a", "2"}))
	q.NoError(q.im.Insert(mockCTX, mockTable, dummy{"b", "2"}))
}

func (q *querySuite) TestPatchAndRemove() {
	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"updatekey": "x"}))

	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", "1"}))
	q.Require().NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"updatekey": "x"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &res))
	q.Equal("x", res.Update)

	q.Require().NoError(q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
}

func (q *querySuite) TestIncrement() {
	type seq struct {
		Key   string `bson:"key"`
		Value int64  `bson:"value"`
	}
	res := seq{}
	q.Require().NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "official"}, &res, "value", 1))
	q.Equal(int64(1), res.Value)
	q.Require().NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "official"}, &res, "value", 1))
	q.Equal(int64(2), res.Value)
}

func (q *querySuite) TestSearchAndCount() {
	for _, d := range []dummy{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, d))
	}

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 2, "-updatekey", bson.M{}, &res))
	q.Equal([]dummy{{"c", "3"}, {"b", "2"}}, res)

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"dummy": bson.M{"$in": []string{"a", "b"}}})
	q.Require().NoError(err)
	q.Equal(2, n)
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(querySuite))
}

func TestGetSortOption(t *testing.T) {
	req := require.New(t)
	req.Equal(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "id", Value: 1},
	}, getSortOption("-createdAt", "", "id"))
}

func TestCompensateOutsideTransaction(t *testing.T) {
	req := require.New(t)
	j := journal.New()
	c := journal.With(ctx.Background(), j)

	undone := false
	Compensate(c, func() { undone = true })
	req.Equal(1, j.Len())

	j.Revert()
	req.True(undone)
}
