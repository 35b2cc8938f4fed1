package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/asset"
)

const testConfig = `
logLevel: debug
server:
  address: ":9000"
mongo:
  enabled: false
redis:
  enabled: false
chain:
  simulated: true
  custodian: "0x00000000000000000000000000000000000000c0"
auth:
  jwtSecret: secret
  tokenTTL: 1h
admins:
  - "0x00000000000000000000000000000000000000ad"
notifier:
  workers: 0
markets:
  - name: official
    payToken:
      symbol: BUSD
      decimals: 18
      address: "0x0000000000000000000000000000000000000e01"
    cap: "50000000000000000000"
    fees:
      rewardsBps: 100
      serverBps: 50
      maintenanceBps: 50
    wallets:
      rewards: "0x00000000000000000000000000000000000000f1"
      server: "0x00000000000000000000000000000000000000f2"
      maintenance: "0x00000000000000000000000000000000000000f3"
    assets:
      - address: "0x0000000000000000000000000000000000000e04"
        kind: unique
  - name: game
    payToken:
      symbol: BUSD
      decimals: 18
      address: "0x0000000000000000000000000000000000000e01"
    fees:
      rewardsBps: 100
      serverBps: 50
      maintenanceBps: 50
    wallets:
      rewards: "0x00000000000000000000000000000000000000f1"
      server: "0x00000000000000000000000000000000000000f2"
      maintenance: "0x00000000000000000000000000000000000000f3"
    assets:
      - address: "0x0000000000000000000000000000000000000e05"
        kind: countable
`

func writeConfig(t *testing.T, body string) string {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	req.NoError(os.Setenv("MARKET_SERVER_ADDRESS", ":9100"))
	defer os.Unsetenv("MARKET_SERVER_ADDRESS")

	cfg, err := Load(Options{ConfigFile: writeConfig(t, testConfig), LogLevel: "warn"})
	req.NoError(err)

	req.Equal("warn", cfg.LogLevel)
	req.Equal(":9100", cfg.Server.Address)
	req.Equal(10*time.Second, cfg.Server.ShutdownTimeout)
	req.Equal(time.Hour, cfg.Auth.TokenTTL)
	req.Equal("Sign in to the market, nonce: %d", cfg.Auth.SignatureMsg)
	req.True(cfg.Chain.Simulated)
	req.Equal(domain.Addresses{"0x00000000000000000000000000000000000000ad"}, cfg.Admins)

	req.Len(cfg.Markets, 2)
	req.Equal("official", cfg.Markets[0].Name)
	req.Equal(int32(18), cfg.Markets[0].PayToken.Decimals)
	req.Equal(int64(100), cfg.Markets[0].Fees.RewardsBps)
	req.Equal(asset.KindUnique, cfg.Markets[0].Assets[0].Kind)
	req.Equal(asset.KindCountable, cfg.Markets[1].Assets[0].Kind)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
}

func TestBuildSimulated(t *testing.T) {
	req := require.New(t)
	cfg, err := Load(Options{ConfigFile: writeConfig(t, testConfig)})
	req.NoError(err)

	rt, err := Build(ctx.Background(), cfg)
	req.NoError(err)
	defer rt.Close()

	req.Nil(rt.Chain)
	req.Nil(rt.Pool)
	req.Len(rt.Markets, 2)

	official, err := rt.Markets.Get("official")
	req.NoError(err)
	state, err := official.Treasury.Get(ctx.Background())
	req.NoError(err)
	req.Equal("50000000000000000000", state.Cap.String())

	game, err := rt.Markets.Get("game")
	req.NoError(err)
	state, err = game.Treasury.Get(ctx.Background())
	req.NoError(err)
	req.Equal(0, state.Cap.Sign())

	_, err = rt.Markets.Get("black")
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestBuildRejectsDuplicatedMarket(t *testing.T) {
	cfg, err := Load(Options{ConfigFile: writeConfig(t, testConfig)})
	require.NoError(t, err)
	cfg.Markets = append(cfg.Markets, cfg.Markets[0])

	_, err = Build(ctx.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrBadParamInput)
}
