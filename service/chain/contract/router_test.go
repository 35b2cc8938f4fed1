package contract

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/market/domain"
	chainMocks "github.com/x-xyz/market/service/chain/mocks"
)

func TestRouterSwapUsesSimulatedAmounts(t *testing.T) {
	req := require.New(t)
	client := &chainMocks.Client{}
	routerAddr := domain.Address("0x00000000000000000000000000000000000000dd")
	counter := domain.Address("0x00000000000000000000000000000000000000ee")
	deadline := time.Unix(1700000000, 0)
	r := NewRouter(client, routerAddr)

	params := []interface{}{
		mock.Anything, routerAddr, mock.Anything, "swapExactTokensForTokens",
		big.NewInt(10), big.NewInt(0), []common.Address{token.ToCommon(), counter.ToCommon()}, operator.ToCommon(), big.NewInt(deadline.Unix()),
	}
	client.On("Simulate", params...).Return([]interface{}{[]*big.Int{big.NewInt(10), big.NewInt(7)}}, nil).Once()
	client.On("Transact", params...).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()

	amounts, err := r.SwapExactTokensForTokens(mockCtx, big.NewInt(10), big.NewInt(0), []domain.Address{token, counter}, operator, deadline)
	req.NoError(err)
	req.Equal([]*big.Int{big.NewInt(10), big.NewInt(7)}, amounts)
	client.AssertExpectations(t)
}

func TestRouterSimulationFailureSendsNothing(t *testing.T) {
	req := require.New(t)
	client := &chainMocks.Client{}
	errRevert := errors.New("execution reverted: INSUFFICIENT_OUTPUT_AMOUNT")
	r := NewRouter(client, token)

	client.On("Simulate", mock.Anything, token, mock.Anything, "addLiquidity",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errRevert).Once()

	_, _, _, err := r.AddLiquidity(mockCtx, token, operator, big.NewInt(1), big.NewInt(1), big.NewInt(0), big.NewInt(0), operator, time.Now())
	req.Equal(errRevert, err)
	client.AssertExpectations(t)
}

func TestRouterSwapRejectsShortOutput(t *testing.T) {
	req := require.New(t)
	client := &chainMocks.Client{}
	counter := domain.Address("0x00000000000000000000000000000000000000ee")
	r := NewRouter(client, token)

	client.On("Simulate", mock.Anything, token, mock.Anything, "swapExactTokensForTokens",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]interface{}{[]*big.Int{}}, nil).Once()

	_, err := r.SwapExactTokensForTokens(mockCtx, big.NewInt(10), big.NewInt(0), []domain.Address{token, counter}, operator, time.Now())
	req.Error(err)
	client.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertExpectations(t)
}
