package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/market/base/ctx"
	hcdomain "github.com/x-xyz/market/domain/healthcheck"
)

type fakeRepo map[string]error

func (f fakeRepo) Names() []string {
	res := []string{}
	for k := range f {
		res = append(res, k)
	}
	return res
}

func (f fakeRepo) Ping(c ctx.Ctx, name string) error {
	return f[name]
}

func TestCheck(t *testing.T) {
	req := require.New(t)

	report := New(fakeRepo{"mongo": nil, "redis": nil}, time.Second).Check(ctx.Background())
	req.True(report.Healthy)
	req.Equal(map[string]string{"mongo": hcdomain.StatusOK, "redis": hcdomain.StatusOK}, report.Components)

	report = New(fakeRepo{"mongo": nil, "chain": errors.New("rpc down")}, 0).Check(ctx.Background())
	req.False(report.Healthy)
	req.Equal("rpc down", report.Components["chain"])
	req.Equal(hcdomain.StatusOK, report.Components["mongo"])

	report = New(fakeRepo{}, 0).Check(ctx.Background())
	req.True(report.Healthy)
	req.Empty(report.Components)
}
