package abi

import "github.com/ethereum/go-ethereum/accounts/abi"

// RouterABI is the subset of the UniswapV2 router the treasury converts through.
var RouterABI abi.ABI

var routerABI = `[{"type":"function","name":"swapExactTokensForTokens","stateMutability":"nonpayable","inputs":[{"type":"uint256","name":"amountIn"},{"type":"uint256","name":"amountOutMin"},{"type":"address[]","name":"path"},{"type":"address","name":"to"},{"type":"uint256","name":"deadline"}],"outputs":[{"type":"uint256[]","name":"amounts"}]},{"type":"function","name":"addLiquidity","stateMutability":"nonpayable","inputs":[{"type":"address","name":"tokenA"},{"type":"address","name":"tokenB"},{"type":"uint256","name":"amountADesired"},{"type":"uint256","name":"amountBDesired"},{"type":"uint256","name":"amountAMin"},{"type":"uint256","name":"amountBMin"},{"type":"address","name":"to"},{"type":"uint256","name":"deadline"}],"outputs":[{"type":"uint256","name":"amountA"},{"type":"uint256","name":"amountB"},{"type":"uint256","name":"liquidity"}]},{"type":"function","name":"getAmountsOut","stateMutability":"view","inputs":[{"type":"uint256","name":"amountIn"},{"type":"address[]","name":"path"}],"outputs":[{"type":"uint256[]","name":"amounts"}]}]`

func init() {
	RouterABI = mustParse("router", routerABI)
}
