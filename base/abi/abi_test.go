package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestMethodsPack(t *testing.T) {
	req := require.New(t)
	a := common.HexToAddress("0x939ae6a4c8dfdbb1f7085189574f0a938013952b")
	b := common.HexToAddress("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	one := big.NewInt(1)

	_, err := ERC20ABI.Pack("transferFrom", a, b, one)
	req.NoError(err)
	_, err = ERC721TokenABI.Pack("transferFrom", a, b, one)
	req.NoError(err)
	_, err = ERC1155TokenABI.Pack("safeBatchTransferFrom", a, b, []*big.Int{one}, []*big.Int{one}, []byte{})
	req.NoError(err)
	_, err = RouterABI.Pack("addLiquidity", a, b, one, one, one, one, a, big.NewInt(1700000000))
	req.NoError(err)
}

func TestRouterUnpack(t *testing.T) {
	req := require.New(t)
	out, err := RouterABI.Methods["swapExactTokensForTokens"].Outputs.Pack([]*big.Int{big.NewInt(10), big.NewInt(7)})
	req.NoError(err)

	unpacked, err := RouterABI.Unpack("swapExactTokensForTokens", out)
	req.NoError(err)
	req.Equal([]*big.Int{big.NewInt(10), big.NewInt(7)}, unpacked[0].([]*big.Int))
}
