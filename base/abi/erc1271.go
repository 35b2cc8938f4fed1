package abi

import "github.com/ethereum/go-ethereum/accounts/abi"

// ERC1271ABI lets contract wallets sign in.
var ERC1271ABI abi.ABI

var erc1271ABI = `[{"type":"function","name":"isValidSignature","stateMutability":"view","inputs":[{"type":"bytes32","name":"hash"},{"type":"bytes","name":"signature"}],"outputs":[{"type":"bytes4","name":"magicValue"}]}]`

func init() {
	ERC1271ABI = mustParse("erc1271", erc1271ABI)
}
