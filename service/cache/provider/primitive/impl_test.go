package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("test", 1).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetExpires() {
	k := "treasury:official"
	v := []byte(`{"accumulated":"0"}`)

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r, e := ts.im.cache.Get([]byte(k))
	ts.NoError(e)
	ts.Equal(v, r)

	time.Sleep(1100 * time.Millisecond)
	_, e = ts.im.cache.Get([]byte(k))
	ts.Equal(freecache.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	_, _, err := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, err)

	ts.NoError(ts.im.cache.Set([]byte("k"), []byte("v"), 10))
	v, ttl, err := ts.im.Get(mockCtx, "k")
	ts.NoError(err)
	ts.Equal("v", string(v))
	ts.True(ttl > 0 && ttl <= 10*time.Second)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "k"))
	_, _, err := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)
}
