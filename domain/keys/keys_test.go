package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPrefix(t *testing.T) {
	req := require.New(t)
	req.Equal("ledgerLock", GetPrefix(RedisKey(PfxLedgerLock, "official")))
	req.Equal("treasury", GetPrefix(RedisLuaKey(PfxTreasury, "game")))
	req.Equal("plain", GetPrefix("plain"))
}
