package contract

import (
	"math/big"
	"time"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/x-xyz/market/base/abi"
	bCtx "github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/service/chain"
)

// Router is a UniswapV2 router used by the operator account. Outputs are read from a
// simulation of the same call right before it is sent.
type Router struct {
	chainService chain.Client
	abi          ethabi.ABI
	addr         domain.Address
}

func NewRouter(chainService chain.Client, addr domain.Address) *Router {
	return &Router{
		chainService: chainService,
		abi:          baseabi.RouterABI,
		addr:         addr,
	}
}

func (r *Router) Address() domain.Address {
	return r.addr
}

func (r *Router) SwapExactTokensForTokens(c bCtx.Ctx, amountIn, amountOutMin *big.Int, path []domain.Address, to domain.Address, deadline time.Time) ([]*big.Int, error) {
	params := []interface{}{amountIn, amountOutMin, toCommon(path), to.ToCommon(), big.NewInt(deadline.Unix())}
	unpacked, err := r.chainService.Simulate(c, r.addr, r.abi, "swapExactTokensForTokens", params...)
	if err != nil {
		return nil, err
	}
	var amounts []*big.Int
	if len(unpacked) > 0 {
		amounts, _ = unpacked[0].([]*big.Int)
	}
	if len(amounts) != len(path) {
		return nil, xerrors.Errorf("swapExactTokensForTokens simulated %d amounts for %d tokens", len(amounts), len(path))
	}
	if _, err := r.chainService.Transact(c, r.addr, r.abi, "swapExactTokensForTokens", params...); err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *Router) AddLiquidity(c bCtx.Ctx, tokenA, tokenB domain.Address, amountADesired, amountBDesired, amountAMin, amountBMin *big.Int, to domain.Address, deadline time.Time) (*big.Int, *big.Int, *big.Int, error) {
	params := []interface{}{
		tokenA.ToCommon(), tokenB.ToCommon(),
		amountADesired, amountBDesired, amountAMin, amountBMin,
		to.ToCommon(), big.NewInt(deadline.Unix()),
	}
	unpacked, err := r.chainService.Simulate(c, r.addr, r.abi, "addLiquidity", params...)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(unpacked) < 3 {
		return nil, nil, nil, xerrors.Errorf("addLiquidity simulated %d outputs", len(unpacked))
	}
	if _, err := r.chainService.Transact(c, r.addr, r.abi, "addLiquidity", params...); err != nil {
		return nil, nil, nil, err
	}
	return unpacked[0].(*big.Int), unpacked[1].(*big.Int), unpacked[2].(*big.Int), nil
}

func toCommon(as []domain.Address) []common.Address {
	res := make([]common.Address, 0, len(as))
	for _, a := range as {
		res = append(res, a.ToCommon())
	}
	return res
}
